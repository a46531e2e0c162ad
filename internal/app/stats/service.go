package stats

import (
	"context"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// ChainStats is one chain's dashboard row. Error is set when the node could
// not be reached; the remaining chains still report.
type ChainStats struct {
	Chain   string `json:"chain"`
	Version string `json:"version,omitempty"`
	Blocks  int64  `json:"blocks"`
	Peers   int    `json:"peers"`
	Error   string `json:"error,omitempty"`
}

type Snapshot struct {
	Chains   []ChainStats     `json:"chains"`
	Totals   map[string]int64 `json:"totals"`
	Activity []Activity       `json:"recentActivity"`
}

// Service aggregates the dashboard snapshot: live per-chain node status plus
// totals and recent rows from the local activity index.
type Service struct {
	status   StatusReader
	activity ActivityReader
	limit    int
}

func NewService(status StatusReader, activity ActivityReader, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Service{status: status, activity: activity, limit: recentLimit}
}

// Snapshot collects stats across all chains. A chain that cannot be reached
// gets its error captured in its row; index failures degrade those fields to
// empty rather than failing the whole snapshot.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	snapshot := Snapshot{
		Chains: make([]ChainStats, 0, len(domain.AllChains())),
		Totals: map[string]int64{},
	}

	for _, chain := range domain.AllChains() {
		row := ChainStats{Chain: chain}
		status, err := s.status.Status(ctx, chain)
		if err != nil {
			row.Error = err.Error()
		} else {
			row.Version = status.Version
			row.Blocks = status.Blocks
			row.Peers = status.Peers
		}
		snapshot.Chains = append(snapshot.Chains, row)
	}

	if totals, err := s.activity.CountByKind(ctx); err == nil {
		snapshot.Totals = totals
	}
	if recent, err := s.activity.Recent(ctx, s.limit); err == nil {
		snapshot.Activity = recent
	}
	return snapshot
}

// Health reports reachability per chain. Healthy is true only when every
// chain answered.
func (s *Service) Health(ctx context.Context) (bool, map[string]string) {
	healthy := true
	chains := make(map[string]string, len(domain.AllChains()))
	for _, chain := range domain.AllChains() {
		if _, err := s.status.Status(ctx, chain); err != nil {
			healthy = false
			chains[chain] = err.Error()
			continue
		}
		chains[chain] = "ok"
	}
	return healthy, chains
}
