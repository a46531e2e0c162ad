package syncer

import (
	"context"
	"time"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/blockverify"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type Relayer interface {
	RelayBlock(ctx context.Context, sourceChain, blockHash string) (relay.RelayResult, error)
}

type Verifier interface {
	VerifyRecent(ctx context.Context, window int) (blockverify.Result, error)
}

type BlockReader interface {
	BlockCount(ctx context.Context, chain string) (int64, error)
	BlockByHeight(ctx context.Context, chain string, height int64) (domain.Block, error)
}

type Clock interface {
	Now() time.Time
}
