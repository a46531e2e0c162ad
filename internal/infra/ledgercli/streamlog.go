package ledgercli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/chainlog"
)

type Canonicalizer interface {
	Canonicalize(ctx context.Context, input []byte) ([]byte, error)
}

// StreamLog is the append-only keyed log over the configured chains. It owns
// the hex-encoding and canonical-JSON conventions so services never touch
// raw stream payloads.
type StreamLog struct {
	clients map[string]*Client
	canon   Canonicalizer
}

func NewStreamLog(clients map[string]*Client, canon Canonicalizer) *StreamLog {
	return &StreamLog{clients: clients, canon: canon}
}

func (l *StreamLog) client(chain string) (*Client, error) {
	client, ok := l.clients[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChainNotConfigured, chain)
	}
	return client, nil
}

// Append publishes value under key and returns the publish transaction id.
func (l *StreamLog) Append(ctx context.Context, chain, stream, key string, value any) (string, error) {
	client, err := l.client(chain)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode stream payload: %w", err)
	}
	canonical, err := l.canon.Canonicalize(ctx, raw)
	if err != nil {
		return "", err
	}

	return client.Publish(ctx, stream, key, hex.EncodeToString(canonical))
}

// Latest returns the newest decodable item under key, or a nil value when
// the key has no items. Undecodable payloads are skipped, not fatal.
func (l *StreamLog) Latest(ctx context.Context, chain, stream, key string) ([]byte, string, error) {
	client, err := l.client(chain)
	if err != nil {
		return nil, "", err
	}

	items, err := client.ListStreamKeyItems(ctx, stream, key)
	if err != nil {
		return nil, "", err
	}
	for i := len(items) - 1; i >= 0; i-- {
		value, err := hex.DecodeString(items[i].Data)
		if err != nil || len(value) == 0 {
			continue
		}
		return value, items[i].TxID, nil
	}
	return nil, "", nil
}

// List decodes every item of a stream in publish order, skipping items whose
// payload is not valid hex.
func (l *StreamLog) List(ctx context.Context, chain, stream string) ([]chainlog.Entry, error) {
	client, err := l.client(chain)
	if err != nil {
		return nil, err
	}

	items, err := client.ListStreamItems(ctx, stream)
	if err != nil {
		return nil, err
	}
	return decodeItems(items), nil
}

// ListKey decodes every item under one key in publish order.
func (l *StreamLog) ListKey(ctx context.Context, chain, stream, key string) ([]chainlog.Entry, error) {
	client, err := l.client(chain)
	if err != nil {
		return nil, err
	}

	items, err := client.ListStreamKeyItems(ctx, stream, key)
	if err != nil {
		return nil, err
	}
	return decodeItems(items), nil
}

func decodeItems(items []StreamItem) []chainlog.Entry {
	entries := make([]chainlog.Entry, 0, len(items))
	for _, item := range items {
		value, err := hex.DecodeString(item.Data)
		if err != nil || len(value) == 0 {
			continue
		}
		entries = append(entries, chainlog.Entry{
			Key:   item.Key(),
			TxID:  item.TxID,
			Time:  item.Time,
			Value: value,
		})
	}
	return entries
}
