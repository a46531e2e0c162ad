package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/chainlog"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// Service executes the lock → coordinate → issue → complete saga. The
// PENDING record on the main chain is the durable coordination point; the
// COMPLETED record goes under a separate key because the store is
// append-only. A failure after the lock triggers best-effort compensation
// (an UNLOCKED record on the source and a FAILED record on the main chain)
// and still surfaces a StepError for manual reconciliation.
type Service struct {
	log      chainlog.Log
	ids      IDGenerator
	clock    Clock
	recorder ActivityRecorder
	logger   *slog.Logger
}

func NewService(log chainlog.Log, ids IDGenerator, clock Clock, recorder ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		log:      log,
		ids:      ids,
		clock:    clock,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *Service) Transfer(ctx context.Context, req Request) (Result, error) {
	source, target, err := s.validate(req)
	if err != nil {
		return Result{}, err
	}

	transferID, err := s.ids.NewTransferID()
	if err != nil {
		return Result{}, fmt.Errorf("generate transfer id: %w", err)
	}

	now := s.clock.Now().Unix()
	base := domain.TransferRecord{
		TransferID:  transferID,
		SourceChain: source,
		TargetChain: target,
		AssetName:   strings.TrimSpace(req.AssetName),
		Quantity:    req.Quantity,
		Metadata:    req.Metadata,
		Timestamp:   now,
	}

	// Step 1: lock the quantity on the source chain.
	lock := base
	lock.Status = domain.TransferLocked
	sourceTxID, err := s.log.Append(ctx, source, domain.StreamTransfers, transferID, lock)
	if err != nil {
		return Result{}, &StepError{TransferID: transferID, Step: StepLock, Err: err}
	}

	// Step 2: durable PENDING record on the main chain.
	pending := base
	pending.Status = domain.TransferPending
	pending.SourceTxID = sourceTxID
	mainTxID, err := s.log.Append(ctx, domain.ChainMain, domain.StreamTransfers, transferID, pending)
	if err != nil {
		s.compensate(ctx, base, sourceTxID, StepCoordinate)
		return Result{}, &StepError{TransferID: transferID, Step: StepCoordinate, Err: err}
	}

	// Step 3: issue on the target chain.
	issued := base
	issued.Status = domain.TransferIssued
	issued.SourceTxID = sourceTxID
	targetTxID, err := s.log.Append(ctx, target, domain.StreamTransfers, transferID, issued)
	if err != nil {
		s.compensate(ctx, base, sourceTxID, StepIssue)
		return Result{}, &StepError{TransferID: transferID, Step: StepIssue, Err: err}
	}

	// Step 4: terminal COMPLETED record under its own key.
	completed := base
	completed.Status = domain.TransferCompleted
	completed.SourceTxID = sourceTxID
	completed.TargetTxID = targetTxID
	completedTxID, err := s.log.Append(ctx, domain.ChainMain, domain.StreamTransfers, domain.TransferCompletedKey(transferID), completed)
	if err != nil {
		s.compensate(ctx, base, sourceTxID, StepComplete)
		return Result{}, &StepError{TransferID: transferID, Step: StepComplete, Err: err}
	}

	_ = s.recorder.RecordActivity(ctx, "transfer", source, transferID, completed)

	return Result{
		TransferID:    transferID,
		Source:        Leg{Chain: source, TxID: sourceTxID},
		Target:        Leg{Chain: target, TxID: targetTxID},
		Coordinator:   Leg{Chain: domain.ChainMain, TxID: mainTxID},
		CompletedTxID: completedTxID,
	}, nil
}

func (s *Service) validate(req Request) (string, string, error) {
	source, err := domain.NormalizeChainName(req.SourceChain)
	if err != nil {
		return "", "", fmt.Errorf("%w: source %q", ErrInvalidRequest, req.SourceChain)
	}
	target, err := domain.NormalizeChainName(req.TargetChain)
	if err != nil {
		return "", "", fmt.Errorf("%w: target %q", ErrInvalidRequest, req.TargetChain)
	}
	if source == target {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, ErrSameChain)
	}
	if strings.TrimSpace(req.AssetName) == "" {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, domain.ErrAssetNameRequired)
	}
	if req.Quantity <= 0 {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, domain.ErrQuantityInvalid)
	}
	return source, target, nil
}

// compensate unwinds the source lock after a later step failed. Both writes
// are best effort: the chains may be the reason the saga failed in the
// first place, so failures here are logged and swallowed.
func (s *Service) compensate(ctx context.Context, base domain.TransferRecord, sourceTxID, failedStep string) {
	now := s.clock.Now().Unix()

	unlock := base
	unlock.Status = domain.TransferUnlocked
	unlock.SourceTxID = sourceTxID
	unlock.Timestamp = now
	if _, err := s.log.Append(ctx, base.SourceChain, domain.StreamTransfers, base.TransferID, unlock); err != nil {
		s.logger.Warn("transfer compensation: unlock write failed",
			"transferId", base.TransferID, "chain", base.SourceChain, "error", err)
	}

	failed := base
	failed.Status = domain.TransferFailed
	failed.SourceTxID = sourceTxID
	failed.Timestamp = now
	if failed.Metadata == nil {
		failed.Metadata = map[string]any{}
	}
	failed.Metadata["failedStep"] = failedStep
	if _, err := s.log.Append(ctx, domain.ChainMain, domain.StreamTransfers, domain.TransferFailedKey(base.TransferID), failed); err != nil {
		s.logger.Warn("transfer compensation: failure record write failed",
			"transferId", base.TransferID, "error", err)
	}
}
