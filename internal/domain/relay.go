package domain

import "fmt"

// RelayRecord is a sidechain block's Merkle root as published on the main
// chain (and mirrored on the source chain). Records are immutable; the key
// encodes chain and height so re-relaying a block supersedes the previous
// item under the same key instead of adding a second one.
type RelayRecord struct {
	SourceChain string `json:"sourceChain"`
	BlockHash   string `json:"blockHash"`
	MerkleRoot  string `json:"merkleRoot"`
	BlockHeight int64  `json:"blockHeight"`
	Timestamp   int64  `json:"timestamp"`
}

func RelayKey(chain string, height int64) string {
	return fmt.Sprintf("%s_block_%d", chain, height)
}

func (r RelayRecord) Validate() error {
	if r.SourceChain == "" {
		return ErrSourceChainRequired
	}
	if r.BlockHash == "" {
		return ErrBlockHashRequired
	}
	if r.MerkleRoot == "" {
		return ErrMerkleRootRequired
	}
	return nil
}
