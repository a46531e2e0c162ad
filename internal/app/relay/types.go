package relay

import "github.com/Icarus-afk/dist-ledger-sub000/internal/domain"

// RelayResult is the published record plus the transaction references of
// both writes: the authoritative one on the main chain and the mirror on
// the source chain.
type RelayResult struct {
	Record    domain.RelayRecord `json:"record"`
	Key       string             `json:"key"`
	MainTxID  string             `json:"mainTxId"`
	LocalTxID string             `json:"localTxId"`
}

type VerifyResult struct {
	Verified     bool   `json:"verified"`
	MerkleRoot   string `json:"merkleRoot"`
	ComputedRoot string `json:"computedRoot"`
}
