package merkle

// Hasher produces hex digests. The tree combines child nodes by re-hashing
// the concatenation of their hex digests, so the hasher's hex form is part
// of the root format.
type Hasher interface {
	SumHex(data []byte) string
}
