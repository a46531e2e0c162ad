package relay

import (
	"context"
	"time"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type BlockReader interface {
	BlockByHash(ctx context.Context, chain, hash string) (domain.Block, error)
}

type Clock interface {
	Now() time.Time
}

// ActivityRecorder feeds the local dashboard index. Recording is advisory:
// a failure never fails the relay operation itself.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, kind, chain, ref string, detail any) error
}
