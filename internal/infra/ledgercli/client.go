package ledgercli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Block is the subset of getblock output the relay needs. Tx is the ordered
// transaction-id list the block verifier rebuilds the root from.
type Block struct {
	Hash       string   `json:"hash"`
	Height     int64    `json:"height"`
	MerkleRoot string   `json:"merkleroot"`
	Time       int64    `json:"time"`
	Tx         []string `json:"tx"`
}

type NodeInfo struct {
	Version     string `json:"version"`
	ChainName   string `json:"chainname"`
	Blocks      int64  `json:"blocks"`
	Connections int    `json:"connections"`
}

// StreamItem is one published item of a keyed stream. Data is the hex
// payload; multichain returns an object instead when the payload is
// off-chain or oversized, which RawData preserves for diagnosis.
type StreamItem struct {
	Publishers []string `json:"publishers"`
	Keys       []string `json:"keys"`
	TxID       string   `json:"txid"`
	Time       int64    `json:"time"`
	Data       string   `json:"-"`
	RawData    json.RawMessage
}

func (i *StreamItem) UnmarshalJSON(data []byte) error {
	type alias struct {
		Publishers []string        `json:"publishers"`
		Keys       []string        `json:"keys"`
		TxID       string          `json:"txid"`
		Time       int64           `json:"time"`
		Data       json.RawMessage `json:"data"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	i.Publishers = a.Publishers
	i.Keys = a.Keys
	i.TxID = a.TxID
	i.Time = a.Time
	i.RawData = a.Data
	if len(a.Data) > 0 && a.Data[0] == '"' {
		var hexData string
		if err := json.Unmarshal(a.Data, &hexData); err != nil {
			return err
		}
		i.Data = hexData
	}
	return nil
}

func (i StreamItem) Key() string {
	if len(i.Keys) == 0 {
		return ""
	}
	return i.Keys[0]
}

// Client is a typed view over the Ledger Command Interface for one chain.
type Client struct {
	runner Runner
	chain  string
}

func NewClient(runner Runner, chain string) *Client {
	return &Client{runner: runner, chain: chain}
}

func (c *Client) Chain() string {
	return c.chain
}

func (c *Client) GetInfo(ctx context.Context) (NodeInfo, error) {
	var info NodeInfo
	if err := c.executeJSON(ctx, &info, "getinfo"); err != nil {
		return NodeInfo{}, err
	}
	return info, nil
}

func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	out, err := c.runner.Execute(ctx, c.chain, 0, "getblockcount")
	if err != nil {
		return 0, err
	}
	count, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse block count %q: %w", out, err)
	}
	return count, nil
}

func (c *Client) GetBlockHash(ctx context.Context, height int64) (string, error) {
	out, err := c.runner.Execute(ctx, c.chain, 0, "getblockhash", strconv.FormatInt(height, 10))
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(out)), `"`), nil
}

func (c *Client) GetBlock(ctx context.Context, hash string) (Block, error) {
	var block Block
	if err := c.executeJSON(ctx, &block, "getblock", hash, "1"); err != nil {
		return Block{}, err
	}
	return block, nil
}

func (c *Client) GetBlockByHeight(ctx context.Context, height int64) (Block, error) {
	hash, err := c.GetBlockHash(ctx, height)
	if err != nil {
		return Block{}, err
	}
	return c.GetBlock(ctx, hash)
}

func (c *Client) GetPeerCount(ctx context.Context) (int, error) {
	var peers []json.RawMessage
	if err := c.executeJSON(ctx, &peers, "getpeerinfo"); err != nil {
		return 0, err
	}
	return len(peers), nil
}

// Publish appends a hex payload to a stream under a key and returns the
// transaction id of the publish.
func (c *Client) Publish(ctx context.Context, stream, key, hexPayload string) (string, error) {
	out, err := c.runner.Execute(ctx, c.chain, 0, "publish", stream, key, hexPayload)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(out)), `"`), nil
}

func (c *Client) ListStreamItems(ctx context.Context, stream string) ([]StreamItem, error) {
	var items []StreamItem
	if err := c.executeJSON(ctx, &items, "liststreamitems", stream, "false", "10000"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListStreamKeyItems(ctx context.Context, stream, key string) ([]StreamItem, error) {
	var items []StreamItem
	if err := c.executeJSON(ctx, &items, "liststreamkeyitems", stream, key); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) executeJSON(ctx context.Context, target any, args ...string) error {
	out, err := c.runner.Execute(ctx, c.chain, 0, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, target); err != nil {
		return fmt.Errorf("parse %s output on %s: %w", args[0], c.chain, err)
	}
	return nil
}
