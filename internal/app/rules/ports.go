package rules

import (
	"context"
	"time"
)

type IDGenerator interface {
	NewID() (string, error)
}

type Clock interface {
	Now() time.Time
}

// Merger applies an RFC 7386 merge patch to a JSON document.
type Merger interface {
	Merge(ctx context.Context, doc, patch []byte) ([]byte, error)
}

// Validator checks a rule document against the rule schema before publish.
type Validator interface {
	ValidateRule(ctx context.Context, document []byte) error
}

type ActivityRecorder interface {
	RecordActivity(ctx context.Context, kind, chain, ref string, detail any) error
}
