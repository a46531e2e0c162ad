package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

type SHA256 struct{}

func (SHA256) SumHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PairHex hashes the concatenation of two hex digests. This is the node
// combination rule of the Merkle tree: children are combined as hex strings,
// not as raw digest bytes, so the rule must stay byte-for-byte stable.
func (h SHA256) PairHex(left, right string) string {
	return h.SumHex([]byte(left + right))
}
