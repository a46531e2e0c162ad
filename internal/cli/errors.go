package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/rules"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/ledgercli"
)

type ErrorKind string

const (
	KindInternal   ErrorKind = "internal"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindLedger     ErrorKind = "ledger"
)

const (
	ExitInternal = 1
	ExitInvalid  = 2
	ExitNotFound = 3
	ExitLedger   = 4
)

type ExitError struct {
	Code    int
	Kind    ErrorKind
	Message string
	Err     error
}

func (e ExitError) Error() string {
	return errorMessage(e)
}

func NormalizeError(err error) ExitError {
	if err == nil {
		return ExitError{Code: 0}
	}
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code == 0 {
			exitErr.Code = ExitInternal
		}
		return exitErr
	}

	var cmdErr *ledgercli.CommandError
	switch {
	case errors.Is(err, relay.ErrRootNotFound),
		errors.Is(err, rules.ErrRecordNotFound):
		return ExitError{Code: ExitNotFound, Kind: KindNotFound, Err: err}
	case errors.As(err, &cmdErr),
		errors.Is(err, ledgercli.ErrChainNotConfigured):
		return ExitError{Code: ExitLedger, Kind: KindLedger, Err: err}
	case errors.Is(err, domain.ErrUnknownChain),
		errors.Is(err, domain.ErrSourceChainRequired),
		errors.Is(err, domain.ErrBlockHashRequired),
		errors.Is(err, domain.ErrMerkleRootRequired),
		errors.Is(err, domain.ErrTransferIDRequired),
		errors.Is(err, domain.ErrAssetNameRequired),
		errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, domain.ErrRuleNameRequired),
		errors.Is(err, domain.ErrActionsRequired),
		errors.Is(err, domain.ErrInvalidActionType),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, relay.ErrInvalidChain),
		errors.Is(err, relay.ErrTransactionIDRequired),
		errors.Is(err, relay.ErrProofRequired),
		errors.Is(err, transfer.ErrInvalidRequest),
		errors.Is(err, transfer.ErrSameChain),
		errors.Is(err, rules.ErrEventRequired):
		return ExitError{Code: ExitInvalid, Kind: KindValidation, Err: err}
	default:
		return ExitError{Code: ExitInternal, Kind: KindInternal, Err: err}
	}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return NormalizeError(err).Code
}

func writeCLIError(w io.Writer, exitErr ExitError, asJSON bool) error {
	if exitErr.Code == 0 {
		return nil
	}
	message := errorMessage(exitErr)
	if asJSON {
		payload := struct {
			Code    int    `json:"code"`
			Kind    string `json:"kind"`
			Message string `json:"message"`
		}{
			Code:    exitErr.Code,
			Kind:    string(exitErr.Kind),
			Message: message,
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	prefix := "Error"
	if exitErr.Kind != "" {
		prefix = fmt.Sprintf("Error (%s)", exitErr.Kind)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", prefix, message)
	return err
}

func errorMessage(exitErr ExitError) string {
	if exitErr.Message != "" {
		return exitErr.Message
	}
	if exitErr.Err != nil {
		return exitErr.Err.Error()
	}
	return "unknown error"
}
