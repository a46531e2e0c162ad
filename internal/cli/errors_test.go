package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/rules"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/ledgercli"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantKind ErrorKind
	}{
		{err: relay.ErrRootNotFound, wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: rules.ErrRecordNotFound, wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: &ledgercli.CommandError{Chain: domain.ChainMain, ExitCode: 1}, wantCode: ExitLedger, wantKind: KindLedger},
		{err: ledgercli.ErrChainNotConfigured, wantCode: ExitLedger, wantKind: KindLedger},
		{err: domain.ErrUnknownChain, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: domain.ErrQuantityInvalid, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: relay.ErrInvalidChain, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: transfer.ErrSameChain, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: rules.ErrEventRequired, wantCode: ExitInvalid, wantKind: KindValidation},
		{err: fmt.Errorf("relay: %w", relay.ErrRootNotFound), wantCode: ExitNotFound, wantKind: KindNotFound},
		{err: errors.New("boom"), wantCode: ExitInternal, wantKind: KindInternal},
	}

	for _, tt := range tests {
		got := NormalizeError(tt.err)
		if got.Code != tt.wantCode {
			t.Fatalf("expected code %d, got %d for %v", tt.wantCode, got.Code, tt.err)
		}
		if got.Kind != tt.wantKind {
			t.Fatalf("expected kind %s, got %s for %v", tt.wantKind, got.Kind, tt.err)
		}
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Fatalf("expected ExitCode(nil) == 0")
	}

	custom := ExitError{Code: 9, Kind: KindInternal, Message: "custom"}
	if ExitCode(custom) != 9 {
		t.Fatalf("expected ExitCode(custom) == 9")
	}
}
