package syncer

import (
	"context"
	"encoding/json"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// lastRelayedHeights derives the sync checkpoint per sidechain by scanning
// every relay record on the main chain and taking the max height per source
// chain. There is no stored checkpoint; unparsable entries are ignored so a
// corrupt item can never wedge the sync.
func (s *Service) lastRelayedHeights(ctx context.Context) (map[string]int64, error) {
	entries, err := s.log.List(ctx, domain.ChainMain, domain.StreamSidechainRoots)
	if err != nil {
		return nil, err
	}

	heights := make(map[string]int64)
	for _, entry := range entries {
		var record domain.RelayRecord
		if err := json.Unmarshal(entry.Value, &record); err != nil {
			continue
		}
		if record.SourceChain == "" || record.BlockHeight <= 0 {
			continue
		}
		if record.BlockHeight > heights[record.SourceChain] {
			heights[record.SourceChain] = record.BlockHeight
		}
	}
	return heights, nil
}
