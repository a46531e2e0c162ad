package main

import (
	"os"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
