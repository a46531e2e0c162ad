package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/merkle"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/relay"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/rules"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/stats"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/syncer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRelay struct {
	relayResult  relay.RelayResult
	relayErr     error
	verifyResult relay.VerifyResult
	verifyErr    error
}

func (f fakeRelay) RelayBlock(ctx context.Context, sourceChain, blockHash string) (relay.RelayResult, error) {
	if f.relayErr != nil {
		return relay.RelayResult{}, f.relayErr
	}
	return f.relayResult, nil
}

func (f fakeRelay) VerifyTransaction(ctx context.Context, sourceChain, blockHash, transactionID string, proof []merkle.ProofStep) (relay.VerifyResult, error) {
	if f.verifyErr != nil {
		return relay.VerifyResult{}, f.verifyErr
	}
	return f.verifyResult, nil
}

type fakeTransfers struct {
	result transfer.Result
	err    error
	got    transfer.Request
}

func (f *fakeTransfers) Transfer(ctx context.Context, req transfer.Request) (transfer.Result, error) {
	f.got = req
	if f.err != nil {
		return transfer.Result{}, f.err
	}
	return f.result, nil
}

type fakeRules struct {
	created domain.Rule
	err     error
}

func (f *fakeRules) CreateRule(ctx context.Context, rule domain.Rule) (rules.CreateResult, error) {
	f.created = rule
	if f.err != nil {
		return rules.CreateResult{}, f.err
	}
	return rules.CreateResult{RuleID: rule.RuleName, TxID: "tx-1"}, nil
}

func (f *fakeRules) ProcessEvent(ctx context.Context, event map[string]any, testOnly bool) (rules.ProcessResult, error) {
	if f.err != nil {
		return rules.ProcessResult{}, f.err
	}
	return rules.ProcessResult{RulesEvaluated: 1, TestOnly: testOnly}, nil
}

type fakeSync struct {
	reports []syncer.ChainSyncReport
}

func (f fakeSync) SyncMerkleRoots(ctx context.Context) []syncer.ChainSyncReport {
	return f.reports
}

type fakeStats struct {
	snapshot stats.Snapshot
	healthy  bool
	chains   map[string]string
}

func (f fakeStats) Snapshot(ctx context.Context) stats.Snapshot {
	return f.snapshot
}

func (f fakeStats) Health(ctx context.Context) (bool, map[string]string) {
	return f.healthy, f.chains
}

type fakeBlocks struct {
	height int64
	block  domain.Block
	err    error
}

func (f fakeBlocks) BlockCount(ctx context.Context, chain string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.height, nil
}

func (f fakeBlocks) BlockByHeight(ctx context.Context, chain string, height int64) (domain.Block, error) {
	if f.err != nil {
		return domain.Block{}, f.err
	}
	return f.block, nil
}

type fakeAutomation struct {
	running  bool
	interval time.Duration
	starts   int
	stops    int
}

func (f *fakeAutomation) Start(interval time.Duration) {
	f.starts++
	f.running = true
	f.interval = interval
}

func (f *fakeAutomation) Stop() {
	f.stops++
	f.running = false
	f.interval = 0
}

func (f *fakeAutomation) Running() bool { return f.running }

func (f *fakeAutomation) Interval() time.Duration { return f.interval }

type deps struct {
	relay      fakeRelay
	transfers  *fakeTransfers
	rules      *fakeRules
	sync       fakeSync
	stats      fakeStats
	blocks     fakeBlocks
	automation *fakeAutomation
}

func newDeps() *deps {
	return &deps{
		transfers:  &fakeTransfers{},
		rules:      &fakeRules{},
		stats:      fakeStats{healthy: true, chains: map[string]string{}},
		automation: &fakeAutomation{},
	}
}

func (d *deps) router() *gin.Engine {
	return New(d.relay, d.transfers, d.rules, d.sync, d.stats, d.blocks, d.automation, nil).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return recorder, decoded
}

func TestRelayMerkleRootSuccess(t *testing.T) {
	d := newDeps()
	d.relay = fakeRelay{relayResult: relay.RelayResult{
		Key:      "distributor-chain_block_10",
		MainTxID: "tx-main",
	}}

	recorder, body := doJSON(t, d.router(), http.MethodPost, "/api/relay/merkleroot",
		map[string]any{"sourceChain": "distributor", "blockHash": "abc"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}
	if body["success"] != true || body["key"] != "distributor-chain_block_10" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRelayMerkleRootInvalidChain(t *testing.T) {
	d := newDeps()
	d.relay = fakeRelay{relayErr: relay.ErrInvalidChain}

	recorder, body := doJSON(t, d.router(), http.MethodPost, "/api/relay/merkleroot",
		map[string]any{"sourceChain": "main", "blockHash": "abc"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if body["success"] != false || body["error"] == "" {
		t.Fatalf("expected failure envelope, got %v", body)
	}
}

func TestVerifyRootNotFoundIs404(t *testing.T) {
	d := newDeps()
	d.relay = fakeRelay{verifyErr: relay.ErrRootNotFound}

	recorder, _ := doJSON(t, d.router(), http.MethodPost, "/api/relay/verify",
		map[string]any{"sourceChain": "distributor", "blockHash": "abc", "transactionId": "tx"})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestLatestBlockNormalizesChain(t *testing.T) {
	d := newDeps()
	d.blocks = fakeBlocks{height: 12, block: domain.Block{Hash: "h12", Height: 12}}

	recorder, body := doJSON(t, d.router(), http.MethodGet, "/api/chain/retailer/latest-block", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}
	if body["chain"] != domain.ChainRetailer {
		t.Fatalf("expected normalized chain name, got %v", body["chain"])
	}
}

func TestLatestBlockUnknownChain(t *testing.T) {
	d := newDeps()
	recorder, _ := doJSON(t, d.router(), http.MethodGet, "/api/chain/warehouse/latest-block", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestTransferAssetPassesRequestThrough(t *testing.T) {
	d := newDeps()
	d.transfers.result = transfer.Result{TransferID: "transfer_01"}

	recorder, body := doJSON(t, d.router(), http.MethodPost, "/api/transfer/asset", map[string]any{
		"sourceChain": "distributor",
		"targetChain": "retailer",
		"assetName":   "PRODUCT-001",
		"quantity":    5,
		"metadata":    map[string]any{"batch": "B-9"},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}
	if d.transfers.got.AssetName != "PRODUCT-001" || d.transfers.got.Quantity != 5 {
		t.Fatalf("request not passed through: %+v", d.transfers.got)
	}
}

func TestTransferAssetSameChainIs400(t *testing.T) {
	d := newDeps()
	d.transfers.err = transfer.ErrSameChain

	recorder, _ := doJSON(t, d.router(), http.MethodPost, "/api/transfer/asset",
		map[string]any{"sourceChain": "distributor", "targetChain": "distributor"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestAutomationStartStop(t *testing.T) {
	d := newDeps()
	router := d.router()

	recorder, body := doJSON(t, router, http.MethodPost, "/api/automation/block-verification",
		map[string]any{"action": "start", "intervalMinutes": 5})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}
	if body["running"] != true || body["intervalMinutes"] != float64(5) {
		t.Fatalf("unexpected automation state: %v", body)
	}
	if d.automation.interval != 5*time.Minute {
		t.Fatalf("expected 5m interval, got %v", d.automation.interval)
	}

	recorder, body = doJSON(t, router, http.MethodPost, "/api/automation/block-verification",
		map[string]any{"action": "stop"})
	if recorder.Code != http.StatusOK || body["running"] != false {
		t.Fatalf("expected stopped state, got %d %v", recorder.Code, body)
	}
}

func TestAutomationRejectsBadInput(t *testing.T) {
	d := newDeps()
	router := d.router()

	recorder, _ := doJSON(t, router, http.MethodPost, "/api/automation/block-verification",
		map[string]any{"action": "start"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing interval, got %d", recorder.Code)
	}

	recorder, _ = doJSON(t, router, http.MethodPost, "/api/automation/block-verification",
		map[string]any{"action": "pause"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", recorder.Code)
	}
	if d.automation.starts != 0 || d.automation.stops != 0 {
		t.Fatalf("automation should not have been touched: %+v", d.automation)
	}
}

func TestCreateRuleDefaultsEnabled(t *testing.T) {
	d := newDeps()

	recorder, body := doJSON(t, d.router(), http.MethodPost, "/api/rules/create", map[string]any{
		"ruleName": "low-stock-alert",
		"actions": []map[string]any{
			{"type": "notifyChain", "targetChain": "distributor-chain", "notificationType": "low_stock"},
		},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}
	if !d.rules.created.Enabled {
		t.Fatalf("expected rule enabled by default")
	}
	if body["ruleId"] != "low-stock-alert" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateRuleValidationIs400(t *testing.T) {
	d := newDeps()
	d.rules.err = domain.ErrActionsRequired

	recorder, _ := doJSON(t, d.router(), http.MethodPost, "/api/rules/create",
		map[string]any{"ruleName": "empty"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestProcessEventEchoesTestOnly(t *testing.T) {
	d := newDeps()

	recorder, body := doJSON(t, d.router(), http.MethodPost, "/api/rules/process", map[string]any{
		"event":    map[string]any{"type": "sale"},
		"testOnly": true,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", recorder.Code, body)
	}
	result, _ := body["result"].(map[string]any)
	if result["testOnly"] != true {
		t.Fatalf("expected testOnly echoed, got %v", body)
	}
}

func TestDashboardStats(t *testing.T) {
	d := newDeps()
	d.stats = fakeStats{
		healthy:  true,
		chains:   map[string]string{},
		snapshot: stats.Snapshot{Totals: map[string]int64{"relay": 7}},
	}

	recorder, body := doJSON(t, d.router(), http.MethodGet, "/api/dashboard/stats", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	statsBody, _ := body["stats"].(map[string]any)
	totals, _ := statsBody["totals"].(map[string]any)
	if totals["relay"] != float64(7) {
		t.Fatalf("unexpected stats body: %v", body)
	}
}

func TestHealthDegradesTo503(t *testing.T) {
	d := newDeps()
	d.stats = fakeStats{healthy: false, chains: map[string]string{domain.ChainMain: "timeout"}}

	recorder, body := doJSON(t, d.router(), http.MethodGet, "/health", nil)
	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", recorder.Code)
	}
	if body["success"] != false {
		t.Fatalf("expected failure flag, got %v", body)
	}
}

func TestSyncMerkleRootsEndpoint(t *testing.T) {
	d := newDeps()
	d.sync = fakeSync{reports: []syncer.ChainSyncReport{
		{Chain: domain.ChainDistributor, BlocksRelayed: 2},
		{Chain: domain.ChainRetailer},
	}}

	recorder, body := doJSON(t, d.router(), http.MethodPost, "/api/sync/merkle-roots", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	chains, _ := body["chains"].([]any)
	if len(chains) != 2 {
		t.Fatalf("expected 2 chain reports, got %v", body)
	}
}
