package ledgercli

import (
	"errors"
	"fmt"
)

var ErrChainNotConfigured = errors.New("chain not configured")

// CommandError carries the failure of one external ledger command: the exit
// code and stderr of the CLI process, plus enough context to tell which
// chain and command failed.
type CommandError struct {
	Chain    string
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ledger command %q on %s failed (exit %d): %s", e.Command, e.Chain, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("ledger command %q on %s failed: %v", e.Command, e.Chain, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
