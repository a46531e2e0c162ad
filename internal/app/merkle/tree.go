package merkle

const (
	PositionLeft  = "left"
	PositionRight = "right"
)

// ProofStep is one sibling hash on the authentication path from a leaf to
// the root, with the side the sibling sits on.
type ProofStep struct {
	Position string `json:"position"`
	Hash     string `json:"hash"`
}

// Tree holds every level of a built Merkle tree, leaves first. Levels are
// retained so authentication paths can be extracted after building.
type Tree struct {
	levels [][]string
}

// Build hashes each leaf and folds levels pairwise until one hash remains.
// Adjacent nodes combine by re-hashing the concatenation of their hex
// digests. An odd level pairs its last node with itself; this tie-break is
// part of the root format and must not change.
func Build(hasher Hasher, leaves []string) (Tree, error) {
	if len(leaves) == 0 {
		return Tree{}, ErrNoLeaves
	}

	level := make([]string, len(leaves))
	for i, leaf := range leaves {
		level[i] = hasher.SumHex([]byte(leaf))
	}

	levels := [][]string{level}
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hasher.SumHex([]byte(left+right)))
		}
		levels = append(levels, next)
		level = next
	}

	return Tree{levels: levels}, nil
}

func (t Tree) Root() string {
	if len(t.levels) == 0 {
		return ""
	}
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// ProofForLeaf extracts the authentication path for the leaf at index.
// A node that was paired with itself contributes its own hash as a right
// sibling, mirroring the duplicate-last rule used by Build.
func (t Tree) ProofForLeaf(index int) ([]ProofStep, error) {
	if len(t.levels) == 0 {
		return nil, ErrNoLeaves
	}
	if index < 0 || index >= len(t.levels[0]) {
		return nil, ErrLeafOutOfRange
	}

	var proof []ProofStep
	for _, level := range t.levels[:len(t.levels)-1] {
		if index%2 == 0 {
			sibling := index
			if index+1 < len(level) {
				sibling = index + 1
			}
			proof = append(proof, ProofStep{Position: PositionRight, Hash: level[sibling]})
		} else {
			proof = append(proof, ProofStep{Position: PositionLeft, Hash: level[index-1]})
		}
		index /= 2
	}
	return proof, nil
}

// FoldProof hashes the leaf and replays the authentication path, returning
// the resulting root. Callers compare the result against a known root; the
// fold itself never decides pass or fail.
func FoldProof(hasher Hasher, leaf string, proof []ProofStep) (string, error) {
	current := hasher.SumHex([]byte(leaf))
	for _, step := range proof {
		switch step.Position {
		case PositionLeft:
			current = hasher.SumHex([]byte(step.Hash + current))
		case PositionRight:
			current = hasher.SumHex([]byte(current + step.Hash))
		default:
			return "", ErrInvalidProofStep
		}
	}
	return current, nil
}
