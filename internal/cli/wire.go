package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/blockverify"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/rules"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/stats"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/syncer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/activityindex"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/canonicaljson"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/hash"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/ident"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/jsonpatch"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/ledgercli"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/schema"
)

// app is the wired object graph shared by the serve, sync and verify
// commands.
type app struct {
	fleet     *ledgercli.Fleet
	log       *ledgercli.StreamLog
	index     *activityindex.Store
	relay     *relay.Service
	verify    *blockverify.Service
	transfers *transfer.Service
	rules     *rules.Engine
	syncer    *syncer.Service
	stats     *stats.Service
	logger    *slog.Logger
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func buildApp(opts *RootOptions) (*app, error) {
	logger := slog.Default()

	runner := ledgercli.NewExecRunner(opts.CLIBinary, nil)
	clients := make(map[string]*ledgercli.Client, len(domain.AllChains()))
	for _, chain := range domain.AllChains() {
		clients[chain] = ledgercli.NewClient(runner, chain)
	}
	fleet := ledgercli.NewFleet(clients)
	log := ledgercli.NewStreamLog(clients, canonicaljson.Canonicalizer{})

	index, err := activityindex.Open(opts.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("open activity index: %w", err)
	}

	validator, err := schema.NewRuleValidator()
	if err != nil {
		_ = index.Close()
		return nil, err
	}

	hasher := hash.SHA256{}
	clock := systemClock{}
	ids := ident.NewULIDGenerator()

	relayService := relay.NewService(fleet, log, hasher, clock, index)
	verifyService := blockverify.NewService(fleet, log, hasher, clock, index)
	transferService := transfer.NewService(log, ids, clock, index, logger)
	ruleEngine := rules.NewEngine(log, jsonpatch.Merger{}, validator, ids, clock, index, logger)
	syncService := syncer.NewService(relayService, verifyService, fleet, log, clock, opts.VerifyWindow, logger)
	statsService := stats.NewService(fleet, activityReader{index}, 20)

	return &app{
		fleet:     fleet,
		log:       log,
		index:     index,
		relay:     relayService,
		verify:    verifyService,
		transfers: transferService,
		rules:     ruleEngine,
		syncer:    syncService,
		stats:     statsService,
		logger:    logger,
	}, nil
}

func (a *app) Close() error {
	return a.index.Close()
}

// activityReader adapts the index's row type to the dashboard's.
type activityReader struct {
	store *activityindex.Store
}

func (r activityReader) Recent(ctx context.Context, limit int) ([]stats.Activity, error) {
	rows, err := r.store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.Activity{
			Kind:      row.Kind,
			Chain:     row.Chain,
			Ref:       row.Ref,
			Detail:    row.Detail,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r activityReader) CountByKind(ctx context.Context) (map[string]int64, error) {
	return r.store.CountByKind(ctx)
}
