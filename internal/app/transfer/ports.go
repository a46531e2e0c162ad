package transfer

import (
	"context"
	"time"
)

type IDGenerator interface {
	NewTransferID() (string, error)
}

type Clock interface {
	Now() time.Time
}

type ActivityRecorder interface {
	RecordActivity(ctx context.Context, kind, chain, ref string, detail any) error
}
