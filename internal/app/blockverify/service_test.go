package blockverify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/chainlog"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/merkle"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/hash"
)

type fakeBlocks struct {
	heights   map[string]int64
	blocks    map[string]map[int64]domain.Block
	countErrs map[string]error
}

func (f *fakeBlocks) BlockCount(ctx context.Context, chain string) (int64, error) {
	if err := f.countErrs[chain]; err != nil {
		return 0, err
	}
	return f.heights[chain], nil
}

func (f *fakeBlocks) BlockByHeight(ctx context.Context, chain string, height int64) (domain.Block, error) {
	block, ok := f.blocks[chain][height]
	if !ok {
		return domain.Block{}, fmt.Errorf("block %d not found on %s", height, chain)
	}
	return block, nil
}

type fakeLog struct {
	appends int
	lastKey string
	err     error
}

func (f *fakeLog) Append(ctx context.Context, chain, stream, key string, value any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.appends++
	f.lastKey = key
	return "txid", nil
}

func (f *fakeLog) Latest(ctx context.Context, chain, stream, key string) ([]byte, string, error) {
	return nil, "", nil
}

func (f *fakeLog) List(ctx context.Context, chain, stream string) ([]chainlog.Entry, error) {
	return nil, nil
}

func (f *fakeLog) ListKey(ctx context.Context, chain, stream, key string) ([]chainlog.Entry, error) {
	return nil, nil
}

type fakeClock struct{}

func (fakeClock) Now() time.Time {
	return time.Unix(1700000000, 0).UTC()
}

type nopRecorder struct{}

func (nopRecorder) RecordActivity(ctx context.Context, kind, chain, ref string, detail any) error {
	return nil
}

func goodBlock(hasher merkle.Hasher, height int64, txIDs []string) domain.Block {
	tree, err := merkle.Build(hasher, txIDs)
	if err != nil {
		panic(err)
	}
	return domain.Block{
		Hash:       fmt.Sprintf("hash-%d", height),
		Height:     height,
		MerkleRoot: tree.Root(),
		TxIDs:      txIDs,
	}
}

func threeChainFixture(hasher merkle.Hasher) *fakeBlocks {
	blocks := make(map[string]map[int64]domain.Block)
	heights := make(map[string]int64)
	for _, chain := range domain.AllChains() {
		blocks[chain] = make(map[int64]domain.Block)
		for h := int64(1); h <= 3; h++ {
			blocks[chain][h] = goodBlock(hasher, h, []string{
				fmt.Sprintf("%s-tx-%d-1", chain, h),
				fmt.Sprintf("%s-tx-%d-2", chain, h),
			})
		}
		heights[chain] = 3
	}
	return &fakeBlocks{heights: heights, blocks: blocks}
}

func TestVerifyRecentCleanWindow(t *testing.T) {
	hasher := hash.SHA256{}
	fixture := threeChainFixture(hasher)
	log := &fakeLog{}
	service := NewService(fixture, log, hasher, fakeClock{}, nopRecorder{})

	result, err := service.VerifyRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("VerifyRecent returned error: %v", err)
	}
	if !result.Clean() {
		t.Fatalf("expected clean result, got %+v", result)
	}
	if len(result.Chains) != 3 {
		t.Fatalf("expected 3 chain reports, got %d", len(result.Chains))
	}
	for _, report := range result.Chains {
		if report.BlocksVerified != 3 {
			t.Fatalf("expected 3 blocks verified on %s, got %d", report.Chain, report.BlocksVerified)
		}
		if report.Transactions != 6 {
			t.Fatalf("expected 6 transactions on %s, got %d", report.Chain, report.Transactions)
		}
	}
	if log.appends != 1 {
		t.Fatalf("expected one audit append, got %d", log.appends)
	}
}

func TestVerifyRecentFlagsTamperedRoot(t *testing.T) {
	hasher := hash.SHA256{}
	fixture := threeChainFixture(hasher)

	tampered := fixture.blocks[domain.ChainRetailer][2]
	tampered.MerkleRoot = hasher.SumHex([]byte("tampered"))
	fixture.blocks[domain.ChainRetailer][2] = tampered

	service := NewService(fixture, &fakeLog{}, hasher, fakeClock{}, nopRecorder{})
	result, err := service.VerifyRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("VerifyRecent returned error: %v", err)
	}

	var issues []BlockIssue
	for _, report := range result.Chains {
		if report.Chain == domain.ChainRetailer {
			issues = report.Issues
		} else if len(report.Issues) != 0 {
			t.Fatalf("unexpected issues on %s: %+v", report.Chain, report.Issues)
		}
	}
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %+v", issues)
	}
	issue := issues[0]
	if issue.BlockHeight != 2 {
		t.Fatalf("expected issue at height 2, got %d", issue.BlockHeight)
	}
	if issue.ExpectedRoot == "" || issue.CalculatedRoot == "" || issue.ExpectedRoot == issue.CalculatedRoot {
		t.Fatalf("expected populated, unequal roots: %+v", issue)
	}
}

func TestVerifyRecentIsolatesChainFailures(t *testing.T) {
	hasher := hash.SHA256{}
	fixture := threeChainFixture(hasher)
	fixture.countErrs = map[string]error{domain.ChainDistributor: errors.New("node down")}

	service := NewService(fixture, &fakeLog{}, hasher, fakeClock{}, nopRecorder{})
	result, err := service.VerifyRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("VerifyRecent returned error: %v", err)
	}

	for _, report := range result.Chains {
		if report.Chain == domain.ChainDistributor {
			if report.Error == "" {
				t.Fatalf("expected chain-level error for distributor")
			}
			continue
		}
		if report.Error != "" || report.BlocksVerified != 3 {
			t.Fatalf("expected %s to verify normally, got %+v", report.Chain, report)
		}
	}
}

func TestVerifyRecentDefaultsWindow(t *testing.T) {
	hasher := hash.SHA256{}
	fixture := threeChainFixture(hasher)
	service := NewService(fixture, &fakeLog{}, hasher, fakeClock{}, nopRecorder{})

	result, err := service.VerifyRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("VerifyRecent returned error: %v", err)
	}
	if result.Window != DefaultWindow {
		t.Fatalf("expected default window %d, got %d", DefaultWindow, result.Window)
	}
}
