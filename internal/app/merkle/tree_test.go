package merkle

import (
	"fmt"
	"testing"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/infra/hash"
)

func TestBuildRequiresLeaves(t *testing.T) {
	if _, err := Build(hash.SHA256{}, nil); err != ErrNoLeaves {
		t.Fatalf("expected ErrNoLeaves, got %v", err)
	}
}

func TestBuildSingleLeafRootIsLeafHash(t *testing.T) {
	hasher := hash.SHA256{}
	tree, err := Build(hasher, []string{"tx1"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if tree.Root() != hasher.SumHex([]byte("tx1")) {
		t.Fatalf("expected single-leaf root to equal the leaf's own hash")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	leaves := []string{"a", "b", "c", "d", "e"}
	first, err := Build(hash.SHA256{}, leaves)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	second, err := Build(hash.SHA256{}, leaves)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if first.Root() != second.Root() {
		t.Fatalf("expected identical roots, got %s and %s", first.Root(), second.Root())
	}
}

func TestBuildDuplicatesLastLeafOnOddLevels(t *testing.T) {
	hasher := hash.SHA256{}
	tree, err := Build(hasher, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	ha := hasher.SumHex([]byte("a"))
	hb := hasher.SumHex([]byte("b"))
	hc := hasher.SumHex([]byte("c"))
	left := hasher.SumHex([]byte(ha + hb))
	right := hasher.SumHex([]byte(hc + hc))
	want := hasher.SumHex([]byte(left + right))
	if tree.Root() != want {
		t.Fatalf("expected root %s, got %s", want, tree.Root())
	}
}

func TestProofRoundTripAllLeaves(t *testing.T) {
	hasher := hash.SHA256{}
	for size := 1; size <= 8; size++ {
		leaves := make([]string, size)
		for i := range leaves {
			leaves[i] = fmt.Sprintf("tx-%d", i)
		}
		tree, err := Build(hasher, leaves)
		if err != nil {
			t.Fatalf("Build(%d leaves) returned error: %v", size, err)
		}
		for i, leaf := range leaves {
			proof, err := tree.ProofForLeaf(i)
			if err != nil {
				t.Fatalf("ProofForLeaf(%d) of %d returned error: %v", i, size, err)
			}
			root, err := FoldProof(hasher, leaf, proof)
			if err != nil {
				t.Fatalf("FoldProof returned error: %v", err)
			}
			if root != tree.Root() {
				t.Fatalf("leaf %d of %d: expected root %s, got %s", i, size, tree.Root(), root)
			}
		}
	}
}

func TestProofForLeafRejectsBadIndex(t *testing.T) {
	tree, err := Build(hash.SHA256{}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if _, err := tree.ProofForLeaf(2); err != ErrLeafOutOfRange {
		t.Fatalf("expected ErrLeafOutOfRange, got %v", err)
	}
	if _, err := tree.ProofForLeaf(-1); err != ErrLeafOutOfRange {
		t.Fatalf("expected ErrLeafOutOfRange, got %v", err)
	}
}

func TestFoldProofRejectsUnknownPosition(t *testing.T) {
	_, err := FoldProof(hash.SHA256{}, "leaf", []ProofStep{{Position: "middle", Hash: "00"}})
	if err != ErrInvalidProofStep {
		t.Fatalf("expected ErrInvalidProofStep, got %v", err)
	}
}

func TestFoldProofTamperedSiblingChangesRoot(t *testing.T) {
	hasher := hash.SHA256{}
	tree, err := Build(hasher, []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	proof, err := tree.ProofForLeaf(1)
	if err != nil {
		t.Fatalf("ProofForLeaf returned error: %v", err)
	}
	proof[0].Hash = hasher.SumHex([]byte("tampered"))
	root, err := FoldProof(hasher, "b", proof)
	if err != nil {
		t.Fatalf("FoldProof returned error: %v", err)
	}
	if root == tree.Root() {
		t.Fatalf("expected tampered proof to produce a different root")
	}
}
