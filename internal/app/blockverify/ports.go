package blockverify

import (
	"context"
	"time"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type BlockReader interface {
	BlockCount(ctx context.Context, chain string) (int64, error)
	BlockByHeight(ctx context.Context, chain string, height int64) (domain.Block, error)
}

type Clock interface {
	Now() time.Time
}

type ActivityRecorder interface {
	RecordActivity(ctx context.Context, kind, chain, ref string, detail any) error
}
