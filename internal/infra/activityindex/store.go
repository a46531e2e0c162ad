package activityindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a local, rebuildable index of cross-chain activity. The ledgers
// remain the source of truth; the index only exists so the dashboard can
// answer "recent activity" queries without scanning three chains.
type Store struct {
	db *sql.DB
}

type Activity struct {
	Kind      string
	Chain     string
	Ref       string
	Detail    json.RawMessage
	CreatedAt int64
}

const (
	KindRelay         = "relay"
	KindTransfer      = "transfer"
	KindRuleExecution = "rule_execution"
	KindVerification  = "verification"
)

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("activity index path required")
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open activity index: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	chain TEXT NOT NULL,
	ref TEXT NOT NULL,
	detail TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_created ON activity(created_at);
CREATE INDEX IF NOT EXISTS idx_activity_kind ON activity(kind);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init activity schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordActivity appends one activity row. Detail is stored as JSON.
func (s *Store) RecordActivity(ctx context.Context, kind, chain, ref string, detail any) error {
	encoded, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode activity detail: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO activity (kind, chain, ref, detail, created_at) VALUES (?, ?, ?, ?, ?)",
		kind, chain, ref, string(encoded), time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the newest rows, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, chain, ref, detail, created_at FROM activity ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query recent activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var detail string
		if err := rows.Scan(&a.Kind, &a.Chain, &a.Ref, &detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		a.Detail = json.RawMessage(detail)
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountByKind returns the number of indexed rows per activity kind.
func (s *Store) CountByKind(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM activity GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("count activity: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

// Reset drops all indexed rows. The index can always be rebuilt from the
// chains, so reset is safe at any time.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM activity"); err != nil {
		return fmt.Errorf("reset activity index: %w", err)
	}
	return nil
}
