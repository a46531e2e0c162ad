package server

import (
	"context"
	"time"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/merkle"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/rules"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/stats"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/syncer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type RelayService interface {
	RelayBlock(ctx context.Context, sourceChain, blockHash string) (relay.RelayResult, error)
	VerifyTransaction(ctx context.Context, sourceChain, blockHash, transactionID string, proof []merkle.ProofStep) (relay.VerifyResult, error)
}

type TransferService interface {
	Transfer(ctx context.Context, req transfer.Request) (transfer.Result, error)
}

type RuleService interface {
	CreateRule(ctx context.Context, rule domain.Rule) (rules.CreateResult, error)
	ProcessEvent(ctx context.Context, event map[string]any, testOnly bool) (rules.ProcessResult, error)
}

type SyncService interface {
	SyncMerkleRoots(ctx context.Context) []syncer.ChainSyncReport
}

type StatsService interface {
	Snapshot(ctx context.Context) stats.Snapshot
	Health(ctx context.Context) (bool, map[string]string)
}

type BlockReader interface {
	BlockCount(ctx context.Context, chain string) (int64, error)
	BlockByHeight(ctx context.Context, chain string, height int64) (domain.Block, error)
}

// Automation controls a recurring job's timer. Start while running replaces
// the interval.
type Automation interface {
	Start(interval time.Duration)
	Stop()
	Running() bool
	Interval() time.Duration
}
