package transfer

type Request struct {
	SourceChain string
	TargetChain string
	AssetName   string
	Quantity    float64
	Metadata    map[string]any
}

type Leg struct {
	Chain string `json:"chain"`
	TxID  string `json:"txId"`
}

// Result carries the transaction references of every leg: the source lock,
// the target issue, and the main-chain coordination records.
type Result struct {
	TransferID    string `json:"transferId"`
	Source        Leg    `json:"source"`
	Target        Leg    `json:"target"`
	Coordinator   Leg    `json:"coordinator"`
	CompletedTxID string `json:"completedTxId"`
}
