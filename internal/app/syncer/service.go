package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/blockverify"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/chainlog"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// Service keeps the three chains mutually consistent: it relays roots for
// blocks produced since the last run, re-verifies recent blocks, copies
// missing product records to the sidechains, and propagates transaction
// status across chains. All passes are idempotent so overlapping runs are
// harmless.
type Service struct {
	relayer  Relayer
	verifier Verifier
	blocks   BlockReader
	log      chainlog.Log
	clock    Clock
	window   int
	logger   *slog.Logger
}

func NewService(relayer Relayer, verifier Verifier, blocks BlockReader, log chainlog.Log, clock Clock, window int, logger *slog.Logger) *Service {
	if window <= 0 {
		window = blockverify.DefaultWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		relayer:  relayer,
		verifier: verifier,
		blocks:   blocks,
		log:      log,
		clock:    clock,
		window:   window,
		logger:   logger,
	}
}

// RunSyncJob runs every pass in sequence. Failures are recorded in the
// report and logged, never propagated: the scheduler's next tick must
// always fire.
func (s *Service) RunSyncJob(ctx context.Context) Report {
	report := Report{Timestamp: s.clock.Now().Unix()}

	report.MerkleSync = s.SyncMerkleRoots(ctx)

	verification, err := s.verifier.VerifyRecent(ctx, s.window)
	if err != nil {
		report.VerificationError = err.Error()
		s.logger.Warn("sync: block verification failed", "error", err)
	} else {
		report.Verification = &verification
	}

	report.Products = s.reconcileProducts(ctx)
	report.Transactions = s.reconcileTransactions(ctx)

	s.logger.Info("sync job finished",
		"blocksRelayed", totalRelayed(report.MerkleSync),
		"productsCopied", report.Products.Copied,
		"acksRequested", report.Transactions.AcksRequested,
		"salesPropagated", report.Transactions.SalesPropagated)

	return report
}

// SyncMerkleRoots relays every block above the per-chain checkpoint. A
// chain's failure stops only that chain's catch-up.
func (s *Service) SyncMerkleRoots(ctx context.Context) []ChainSyncReport {
	checkpoints, err := s.lastRelayedHeights(ctx)
	if err != nil {
		s.logger.Warn("sync: checkpoint scan failed", "error", err)
		reports := make([]ChainSyncReport, 0, len(domain.Sidechains()))
		for _, chain := range domain.Sidechains() {
			reports = append(reports, ChainSyncReport{Chain: chain, Error: err.Error()})
		}
		return reports
	}

	reports := make([]ChainSyncReport, 0, len(domain.Sidechains()))
	for _, chain := range domain.Sidechains() {
		reports = append(reports, s.syncChain(ctx, chain, checkpoints[chain]))
	}
	return reports
}

func (s *Service) syncChain(ctx context.Context, chain string, lastHeight int64) ChainSyncReport {
	report := ChainSyncReport{Chain: chain, FromHeight: lastHeight + 1}

	height, err := s.blocks.BlockCount(ctx, chain)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.ToHeight = height

	for h := lastHeight + 1; h <= height; h++ {
		block, err := s.blocks.BlockByHeight(ctx, chain, h)
		if err != nil {
			report.Error = err.Error()
			return report
		}
		if _, err := s.relayer.RelayBlock(ctx, chain, block.Hash); err != nil {
			report.Error = err.Error()
			return report
		}
		report.BlocksRelayed++
	}
	return report
}

// reconcileProducts copies main-chain product records missing from a
// sidechain onto that sidechain, byte for byte.
func (s *Service) reconcileProducts(ctx context.Context) ProductReport {
	var report ProductReport

	mainEntries, err := s.log.List(ctx, domain.ChainMain, domain.StreamProducts)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	products := latestByKey(mainEntries)
	keys := sortedKeys(products)

	for _, chain := range domain.Sidechains() {
		sideEntries, err := s.log.List(ctx, chain, domain.StreamProducts)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", chain, err))
			continue
		}
		existing := latestByKey(sideEntries)

		for _, key := range keys {
			if _, ok := existing[key]; ok {
				continue
			}
			if _, err := s.log.Append(ctx, chain, domain.StreamProducts, key, json.RawMessage(products[key])); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("%s/%s: %v", chain, key, err))
				continue
			}
			report.Copied++
		}
	}
	return report
}

// reconcileTransactions propagates distributor transactions awaiting a
// retailer acknowledgement, and completed retailer sales back to the
// distributor as inventory decrements. Sales are marked synced on the
// retailer chain so a later run does not propagate them again.
func (s *Service) reconcileTransactions(ctx context.Context) TransactionReport {
	var report TransactionReport
	s.propagateAckRequests(ctx, &report)
	s.propagateCompletedSales(ctx, &report)
	return report
}

func (s *Service) propagateAckRequests(ctx context.Context, report *TransactionReport) {
	entries, err := s.log.List(ctx, domain.ChainDistributor, domain.StreamTransactions)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("distributor transactions: %v", err))
		return
	}

	latest := latestByKey(entries)
	for _, key := range sortedKeys(latest) {
		record := decodeObject(latest[key])
		if record == nil {
			continue
		}
		if record["status"] != "pending" || record["requiresAck"] != true {
			continue
		}

		notifKey := "ack_request_" + key
		already, err := s.log.ListKey(ctx, domain.ChainRetailer, domain.StreamNotifications, notifKey)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("retailer notifications %s: %v", notifKey, err))
			continue
		}
		if len(already) > 0 {
			continue
		}

		envelope := map[string]any{
			"notificationType": "transaction_ack_request",
			"transactionKey":   key,
			"transaction":      record,
			"timestamp":        s.clock.Now().Unix(),
		}
		if _, err := s.log.Append(ctx, domain.ChainRetailer, domain.StreamNotifications, notifKey, envelope); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("notify retailer %s: %v", notifKey, err))
			continue
		}
		report.AcksRequested++
	}
}

func (s *Service) propagateCompletedSales(ctx context.Context, report *TransactionReport) {
	entries, err := s.log.List(ctx, domain.ChainRetailer, domain.StreamTransactions)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("retailer transactions: %v", err))
		return
	}

	latest := latestByKey(entries)
	for _, key := range sortedKeys(latest) {
		record := decodeObject(latest[key])
		if record == nil {
			continue
		}
		if record["type"] != "sale" || record["status"] != "completed" || record["synced"] == true {
			continue
		}

		envelope := map[string]any{
			"notificationType": "inventory_decrement",
			"saleKey":          key,
			"sale":             record,
			"timestamp":        s.clock.Now().Unix(),
		}
		if _, err := s.log.Append(ctx, domain.ChainDistributor, domain.StreamNotifications, "inventory_decrement_"+key, envelope); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("notify distributor %s: %v", key, err))
			continue
		}

		record["synced"] = true
		record["syncedAt"] = s.clock.Now().Unix()
		if _, err := s.log.Append(ctx, domain.ChainRetailer, domain.StreamTransactions, key, record); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("mark sale synced %s: %v", key, err))
			continue
		}
		report.SalesPropagated++
	}
}

func latestByKey(entries []chainlog.Entry) map[string][]byte {
	latest := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.Key == "" {
			continue
		}
		latest[entry.Key] = entry.Value
	}
	return latest
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func decodeObject(value []byte) map[string]any {
	var object map[string]any
	if err := json.Unmarshal(value, &object); err != nil {
		return nil
	}
	return object
}

func totalRelayed(reports []ChainSyncReport) int {
	total := 0
	for _, report := range reports {
		total += report.BlocksRelayed
	}
	return total
}
