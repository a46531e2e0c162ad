package blockverify

// DefaultWindow is the trailing number of blocks checked per chain when the
// caller does not choose one.
const DefaultWindow = 6

// BlockIssue is one root mismatch, with both roots kept for diagnosis.
type BlockIssue struct {
	BlockHeight    int64  `json:"blockHeight"`
	BlockHash      string `json:"blockHash"`
	ExpectedRoot   string `json:"expectedRoot"`
	CalculatedRoot string `json:"calculatedRoot"`
}

// ChainReport is the verification outcome for one chain. Error is set when
// the chain could not be read at all; the other chains still run.
type ChainReport struct {
	Chain          string       `json:"chain"`
	BlockHeight    int64        `json:"blockHeight"`
	BlocksVerified int          `json:"blocksVerified"`
	Transactions   int          `json:"transactions"`
	Issues         []BlockIssue `json:"issues,omitempty"`
	Error          string       `json:"error,omitempty"`
}

type Result struct {
	Timestamp int64         `json:"timestamp"`
	Window    int           `json:"window"`
	Chains    []ChainReport `json:"chains"`
}

// Clean reports whether no chain produced issues or errors.
func (r Result) Clean() bool {
	for _, chain := range r.Chains {
		if len(chain.Issues) > 0 || chain.Error != "" {
			return false
		}
	}
	return true
}
