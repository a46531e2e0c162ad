package merkle

import "errors"

var (
	ErrNoLeaves         = errors.New("merkle tree requires at least one leaf")
	ErrLeafOutOfRange   = errors.New("leaf index out of range")
	ErrInvalidProofStep = errors.New("proof step position must be left or right")
)
