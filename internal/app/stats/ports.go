package stats

import (
	"context"
	"encoding/json"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

type StatusReader interface {
	Status(ctx context.Context, chain string) (domain.NodeStatus, error)
}

// Activity is one indexed cross-ledger event, newest first in Recent.
type Activity struct {
	Kind      string          `json:"kind"`
	Chain     string          `json:"chain"`
	Ref       string          `json:"ref"`
	Detail    json.RawMessage `json:"detail"`
	CreatedAt int64           `json:"createdAt"`
}

type ActivityReader interface {
	Recent(ctx context.Context, limit int) ([]Activity, error)
	CountByKind(ctx context.Context) (map[string]int64, error)
}
