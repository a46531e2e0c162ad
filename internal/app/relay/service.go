package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/chainlog"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/merkle"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type Service struct {
	blocks   BlockReader
	log      chainlog.Log
	hasher   merkle.Hasher
	clock    Clock
	recorder ActivityRecorder
}

func NewService(blocks BlockReader, log chainlog.Log, hasher merkle.Hasher, clock Clock, recorder ActivityRecorder) *Service {
	return &Service{
		blocks:   blocks,
		log:      log,
		hasher:   hasher,
		clock:    clock,
		recorder: recorder,
	}
}

// RelayBlock publishes a sidechain block's recorded Merkle root to the main
// chain and mirrors it on the source chain. The key encodes chain and
// height, so relaying the same block twice supersedes the earlier item
// instead of duplicating it.
func (s *Service) RelayBlock(ctx context.Context, sourceChain, blockHash string) (RelayResult, error) {
	chain, err := domain.NormalizeChainName(sourceChain)
	if err != nil || !domain.IsSidechain(chain) {
		return RelayResult{}, ErrInvalidChain
	}
	if strings.TrimSpace(blockHash) == "" {
		return RelayResult{}, domain.ErrBlockHashRequired
	}

	block, err := s.blocks.BlockByHash(ctx, chain, blockHash)
	if err != nil {
		return RelayResult{}, err
	}

	record := domain.RelayRecord{
		SourceChain: chain,
		BlockHash:   block.Hash,
		MerkleRoot:  block.MerkleRoot,
		BlockHeight: block.Height,
		Timestamp:   s.clock.Now().Unix(),
	}
	if err := record.Validate(); err != nil {
		return RelayResult{}, fmt.Errorf("relay record for block %s: %w", blockHash, err)
	}

	key := domain.RelayKey(chain, block.Height)
	mainTxID, err := s.log.Append(ctx, domain.ChainMain, domain.StreamSidechainRoots, key, record)
	if err != nil {
		return RelayResult{}, err
	}
	localTxID, err := s.log.Append(ctx, chain, domain.StreamLocalRoots, key, record)
	if err != nil {
		return RelayResult{}, err
	}

	_ = s.recorder.RecordActivity(ctx, "relay", chain, key, record)

	return RelayResult{
		Record:    record,
		Key:       key,
		MainTxID:  mainTxID,
		LocalTxID: localTxID,
	}, nil
}

// VerifyTransaction replays a Merkle proof against the root previously
// relayed for the block and writes an audit entry with the outcome either
// way. The lookup scans the relay stream because callers identify the
// record by block hash, not by key.
func (s *Service) VerifyTransaction(ctx context.Context, sourceChain, blockHash, transactionID string, proof []merkle.ProofStep) (VerifyResult, error) {
	chain, err := domain.NormalizeChainName(sourceChain)
	if err != nil || !domain.IsSidechain(chain) {
		return VerifyResult{}, ErrInvalidChain
	}
	if strings.TrimSpace(blockHash) == "" {
		return VerifyResult{}, domain.ErrBlockHashRequired
	}
	if strings.TrimSpace(transactionID) == "" {
		return VerifyResult{}, ErrTransactionIDRequired
	}

	record, found, err := s.findRelayRecord(ctx, chain, blockHash)
	if err != nil {
		return VerifyResult{}, err
	}
	if !found {
		return VerifyResult{}, fmt.Errorf("%w: %s on %s", ErrRootNotFound, blockHash, chain)
	}

	computed, err := merkle.FoldProof(s.hasher, transactionID, proof)
	if err != nil {
		return VerifyResult{}, err
	}
	verified := computed == record.MerkleRoot

	now := s.clock.Now()
	auditKey := fmt.Sprintf("verify_%s_%d", transactionID, now.UnixMilli())
	audit := map[string]any{
		"type":          "proof_verification",
		"sourceChain":   chain,
		"blockHash":     blockHash,
		"transactionId": transactionID,
		"merkleRoot":    record.MerkleRoot,
		"computedRoot":  computed,
		"verified":      verified,
		"timestamp":     now.Unix(),
	}
	if _, err := s.log.Append(ctx, domain.ChainMain, domain.StreamAuditLog, auditKey, audit); err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		Verified:     verified,
		MerkleRoot:   record.MerkleRoot,
		ComputedRoot: computed,
	}, nil
}

func (s *Service) findRelayRecord(ctx context.Context, chain, blockHash string) (domain.RelayRecord, bool, error) {
	entries, err := s.log.List(ctx, domain.ChainMain, domain.StreamSidechainRoots)
	if err != nil {
		return domain.RelayRecord{}, false, err
	}

	// Newest entries win: a re-relayed block supersedes the earlier item.
	for i := len(entries) - 1; i >= 0; i-- {
		var record domain.RelayRecord
		if err := json.Unmarshal(entries[i].Value, &record); err != nil {
			continue
		}
		if record.BlockHash == blockHash && record.SourceChain == chain {
			return record, true, nil
		}
	}
	return domain.RelayRecord{}, false, nil
}
