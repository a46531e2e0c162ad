package domain

type TransferStatus string

const (
	TransferLocked    TransferStatus = "LOCKED"
	TransferPending   TransferStatus = "PENDING"
	TransferIssued    TransferStatus = "ISSUED"
	TransferCompleted TransferStatus = "COMPLETED"
	// TransferUnlocked marks the compensating record written on the source
	// chain when a step after the lock fails.
	TransferUnlocked TransferStatus = "UNLOCKED"
	TransferFailed   TransferStatus = "FAILED"
)

func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferLocked, TransferPending, TransferIssued, TransferCompleted, TransferUnlocked, TransferFailed:
		return true
	default:
		return false
	}
}

// TransferRecord tracks one cross-chain asset transfer. The main chain holds
// a PENDING record under the transfer id and, because the store is
// append-only, the terminal COMPLETED record under a separate key.
type TransferRecord struct {
	TransferID  string         `json:"transferId"`
	SourceChain string         `json:"sourceChain"`
	TargetChain string         `json:"targetChain"`
	AssetName   string         `json:"assetName"`
	Quantity    float64        `json:"quantity"`
	Status      TransferStatus `json:"status"`
	SourceTxID  string         `json:"sourceTxId,omitempty"`
	TargetTxID  string         `json:"targetTxId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   int64          `json:"timestamp"`
}

func TransferCompletedKey(transferID string) string {
	return transferID + "_completed"
}

func TransferFailedKey(transferID string) string {
	return transferID + "_failed"
}

func (t TransferRecord) Validate() error {
	if t.TransferID == "" {
		return ErrTransferIDRequired
	}
	if t.SourceChain == "" {
		return ErrSourceChainRequired
	}
	if t.AssetName == "" {
		return ErrAssetNameRequired
	}
	if t.Quantity <= 0 {
		return ErrQuantityInvalid
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
