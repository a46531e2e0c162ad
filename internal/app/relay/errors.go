package relay

import "errors"

var (
	ErrInvalidChain          = errors.New("source chain must be a sidechain")
	ErrRootNotFound          = errors.New("no relayed merkle root found for block")
	ErrTransactionIDRequired = errors.New("transaction id is required")
	ErrProofRequired         = errors.New("merkle proof is required")
)
