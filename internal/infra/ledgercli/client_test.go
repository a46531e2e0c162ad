package ledgercli

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// fakeRunner replies with canned output per command name.
type fakeRunner struct {
	outputs map[string]string
	err     error
	calls   [][]string
}

func (f *fakeRunner) Execute(ctx context.Context, chain string, replica int, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return nil, f.err
	}
	out, ok := f.outputs[args[0]]
	if !ok {
		return nil, errors.New("unexpected command " + args[0])
	}
	return []byte(out), nil
}

func TestStreamItemUnmarshalHexData(t *testing.T) {
	payload := `{"publishers":["1abc"],"keys":["k1"],"txid":"tx1","time":1700000000,"data":"7b7d"}`
	var item StreamItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Data != "7b7d" {
		t.Fatalf("expected hex data kept, got %q", item.Data)
	}
	if item.Key() != "k1" || item.TxID != "tx1" {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestStreamItemUnmarshalObjectData(t *testing.T) {
	payload := `{"keys":["k1"],"txid":"tx1","data":{"size":100,"txid":"off"}}`
	var item StreamItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Data != "" {
		t.Fatalf("expected no hex data for object payload, got %q", item.Data)
	}
	if len(item.RawData) == 0 {
		t.Fatalf("expected raw data preserved")
	}
}

func TestGetBlockCountParsesPlainNumber(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"getblockcount": "128"}}
	client := NewClient(runner, "main-chain")

	count, err := client.GetBlockCount(context.Background())
	if err != nil {
		t.Fatalf("GetBlockCount: %v", err)
	}
	if count != 128 {
		t.Fatalf("expected 128, got %d", count)
	}
}

func TestGetBlockCountRejectsGarbage(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"getblockcount": "not-a-number"}}
	client := NewClient(runner, "main-chain")

	if _, err := client.GetBlockCount(context.Background()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGetBlockByHeightChainsHashLookup(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"getblockhash": `"abcd"`,
		"getblock":     `{"hash":"abcd","height":7,"merkleroot":"root7","time":1,"tx":["t1","t2"]}`,
	}}
	client := NewClient(runner, "distributor-chain")

	block, err := client.GetBlockByHeight(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetBlockByHeight: %v", err)
	}
	if block.Hash != "abcd" || block.MerkleRoot != "root7" || len(block.Tx) != 2 {
		t.Fatalf("unexpected block %+v", block)
	}
	if runner.calls[1][1] != "abcd" {
		t.Fatalf("expected getblock called with resolved hash, got %v", runner.calls[1])
	}
}

func TestPublishStripsQuotes(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"publish": `"txid-1"`}}
	client := NewClient(runner, "main-chain")

	txID, err := client.Publish(context.Background(), "audit_log", "k", "7b7d")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if txID != "txid-1" {
		t.Fatalf("expected txid-1, got %q", txID)
	}
	want := []string{"publish", "audit_log", "k", "7b7d"}
	if strings.Join(runner.calls[0], " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected publish args %v", runner.calls[0])
	}
}

func TestGetPeerCount(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"getpeerinfo": `[{"addr":"a"},{"addr":"b"},{"addr":"c"}]`}}
	client := NewClient(runner, "main-chain")

	peers, err := client.GetPeerCount(context.Background())
	if err != nil {
		t.Fatalf("GetPeerCount: %v", err)
	}
	if peers != 3 {
		t.Fatalf("expected 3 peers, got %d", peers)
	}
}
