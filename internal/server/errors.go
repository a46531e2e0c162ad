package server

import (
	"errors"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/rules"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

var badRequestErrors = []error{
	domain.ErrUnknownChain,
	domain.ErrSourceChainRequired,
	domain.ErrBlockHashRequired,
	domain.ErrMerkleRootRequired,
	domain.ErrTransferIDRequired,
	domain.ErrAssetNameRequired,
	domain.ErrQuantityInvalid,
	domain.ErrRuleNameRequired,
	domain.ErrActionsRequired,
	domain.ErrInvalidActionType,
	domain.ErrInvalidStatus,
	relay.ErrInvalidChain,
	relay.ErrTransactionIDRequired,
	relay.ErrProofRequired,
	transfer.ErrInvalidRequest,
	transfer.ErrSameChain,
	rules.ErrEventRequired,
}

var notFoundErrors = []error{
	relay.ErrRootNotFound,
	rules.ErrRecordNotFound,
}

// statusForError maps a service failure to an HTTP status: validation
// failures are the caller's fault, lookup misses are 404, everything else
// (ledger command failures included) is a 500.
func statusForError(err error) int {
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	var validation *jsonschema.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}
