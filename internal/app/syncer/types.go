package syncer

import "github.com/Icarus-afk/dist-ledger-sub000/internal/app/blockverify"

// ChainSyncReport is the relay catch-up outcome for one sidechain.
type ChainSyncReport struct {
	Chain         string `json:"chain"`
	FromHeight    int64  `json:"fromHeight"`
	ToHeight      int64  `json:"toHeight"`
	BlocksRelayed int    `json:"blocksRelayed"`
	Error         string `json:"error,omitempty"`
}

type ProductReport struct {
	Copied int      `json:"copied"`
	Errors []string `json:"errors,omitempty"`
}

type TransactionReport struct {
	AcksRequested   int      `json:"acksRequested"`
	SalesPropagated int      `json:"salesPropagated"`
	Errors          []string `json:"errors,omitempty"`
}

// Report is the outcome of one full sync job run. Every pass records its
// own failures; a failed pass never aborts the run.
type Report struct {
	Timestamp         int64               `json:"timestamp"`
	MerkleSync        []ChainSyncReport   `json:"merkleSync"`
	Verification      *blockverify.Result `json:"verification,omitempty"`
	VerificationError string              `json:"verificationError,omitempty"`
	Products          ProductReport       `json:"products"`
	Transactions      TransactionReport   `json:"transactions"`
}
