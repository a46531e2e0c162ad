package jsonpatch

import (
	"context"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Merger applies RFC 7386 merge patches. The rule engine's updateStatus
// action uses it to fold a status change and additional fields into the
// latest record for a key before republishing.
type Merger struct{}

func (Merger) Merge(ctx context.Context, doc, patch []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("apply merge patch: %w", err)
	}
	return out, nil
}
