package ledgercli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Runner executes one named command against a chain, optionally on a
// specific replica node, and returns the raw CLI output.
type Runner interface {
	Execute(ctx context.Context, chain string, replica int, args ...string) ([]byte, error)
}

// ExecRunner shells out to the chain CLI binary (multichain-cli by
// default). NodeArgs maps a chain to per-replica extra arguments such as
// -datadir or -rpcport; replica 0 with no configuration falls back to the
// bare chain name.
type ExecRunner struct {
	Binary   string
	NodeArgs map[string][][]string
}

func NewExecRunner(binary string, nodeArgs map[string][][]string) *ExecRunner {
	if binary == "" {
		binary = "multichain-cli"
	}
	return &ExecRunner{Binary: binary, NodeArgs: nodeArgs}
}

func (r *ExecRunner) Execute(ctx context.Context, chain string, replica int, args ...string) ([]byte, error) {
	cliArgs := make([]string, 0, len(args)+4)
	if nodes, ok := r.NodeArgs[chain]; ok {
		if replica < 0 || replica >= len(nodes) {
			replica = 0
		}
		if replica < len(nodes) {
			cliArgs = append(cliArgs, nodes[replica]...)
		}
	}
	cliArgs = append(cliArgs, chain)
	cliArgs = append(cliArgs, args...)

	cmd := exec.CommandContext(ctx, r.Binary, cliArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &CommandError{
			Chain:    chain,
			Command:  strings.Join(args, " "),
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return bytes.TrimSpace(stdout.Bytes()), nil
}
