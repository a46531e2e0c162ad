package domain

import "errors"

var (
	ErrUnknownChain        = errors.New("unknown chain")
	ErrSourceChainRequired = errors.New("source chain is required")
	ErrBlockHashRequired   = errors.New("block hash is required")
	ErrMerkleRootRequired  = errors.New("merkle root is required")
	ErrTransferIDRequired  = errors.New("transfer id is required")
	ErrAssetNameRequired   = errors.New("asset name is required")
	ErrQuantityInvalid     = errors.New("quantity must be greater than zero")
	ErrRuleNameRequired    = errors.New("rule name is required")
	ErrActionsRequired     = errors.New("at least one action is required")
	ErrInvalidActionType   = errors.New("invalid action type")
	ErrInvalidStatus       = errors.New("invalid transfer status")
)
