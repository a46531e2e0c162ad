package domain

// Block is the ledger-reported block view the relay works with. TxIDs is the
// ordered transaction list the verifier rebuilds the Merkle root from.
type Block struct {
	Hash       string   `json:"hash"`
	Height     int64    `json:"height"`
	MerkleRoot string   `json:"merkleRoot"`
	Time       int64    `json:"time"`
	TxIDs      []string `json:"tx"`
}

// NodeStatus is a chain node's health snapshot used by the dashboard.
type NodeStatus struct {
	Chain   string `json:"chain"`
	Version string `json:"version"`
	Blocks  int64  `json:"blocks"`
	Peers   int    `json:"peers"`
}
