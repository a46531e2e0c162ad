// Package chainlog defines the append-only keyed log the core services use
// to read and write chain streams. The underlying store has no in-place
// update: "mutation" means appending a new item under the same key and
// readers take the newest item as current.
package chainlog

import "context"

// Entry is one decoded stream item in publish order.
type Entry struct {
	Key   string
	TxID  string
	Time  int64
	Value []byte
}

type Log interface {
	// Append publishes value under key and returns the transaction id.
	Append(ctx context.Context, chain, stream, key string, value any) (string, error)
	// Latest returns the newest decodable item under key, or a nil value
	// when the key has no items.
	Latest(ctx context.Context, chain, stream, key string) ([]byte, string, error)
	// List returns every decodable item of a stream in publish order.
	List(ctx context.Context, chain, stream string) ([]Entry, error)
	// ListKey returns every decodable item under one key in publish order.
	ListKey(ctx context.Context, chain, stream, key string) ([]Entry, error)
}
