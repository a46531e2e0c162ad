package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

var templateToken = regexp.MustCompile(`\$\{([^}]+)\}`)

func (e *Engine) executeAction(ctx context.Context, action domain.Action, event map[string]any) domain.ActionResult {
	result := domain.ActionResult{Type: action.Type}

	var txID string
	var err error
	switch action.Type {
	case domain.ActionRecordTransaction:
		txID, err = e.recordTransaction(ctx, action, event)
	case domain.ActionNotifyChain:
		txID, err = e.notifyChain(ctx, action, event)
	case domain.ActionUpdateStatus:
		txID, err = e.updateStatus(ctx, action)
	default:
		err = domain.ErrInvalidActionType
	}

	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	result.TxID = txID
	return result
}

func (e *Engine) recordTransaction(ctx context.Context, action domain.Action, event map[string]any) (string, error) {
	chain, err := domain.NormalizeChainName(action.Chain)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, action.Chain)
	}
	key := substituteString(action.Key, event)
	data := substituteTemplates(action.Data, event)
	return e.log.Append(ctx, chain, action.Stream, key, data)
}

func (e *Engine) notifyChain(ctx context.Context, action domain.Action, event map[string]any) (string, error) {
	chain, err := domain.NormalizeChainName(action.TargetChain)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, action.TargetChain)
	}
	envelope := map[string]any{
		"notificationType": action.NotificationType,
		"event":            event,
		"data":             action.Data,
		"timestamp":        e.clock.Now().Unix(),
	}
	return e.log.Append(ctx, chain, domain.StreamNotifications, action.NotificationType, envelope)
}

// updateStatus is a read-modify-write: latest record for the key, merge in
// the status change, republish under the same key. The per-key lock keeps
// two concurrent updates from overwriting each other's fields.
func (e *Engine) updateStatus(ctx context.Context, action domain.Action) (string, error) {
	chain, err := domain.NormalizeChainName(action.Chain)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, action.Chain)
	}

	unlock := e.keys.lock(chain + "/" + action.Stream + "/" + action.Key)
	defer unlock()

	current, _, err := e.log.Latest(ctx, chain, action.Stream, action.Key)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", fmt.Errorf("%w: %s/%s on %s", ErrRecordNotFound, action.Stream, action.Key, chain)
	}

	patch := map[string]any{
		"status":      action.NewStatus,
		"lastUpdated": e.clock.Now().Unix(),
	}
	for k, v := range action.AdditionalData {
		patch[k] = v
	}
	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return "", fmt.Errorf("encode status patch: %w", err)
	}

	merged, err := e.merger.Merge(ctx, current, patchBytes)
	if err != nil {
		return "", err
	}
	return e.log.Append(ctx, chain, action.Stream, action.Key, json.RawMessage(merged))
}

// substituteTemplates resolves ${dot.path} tokens inside string values of
// data, walking nested objects and arrays. Unresolved tokens stay verbatim.
func substituteTemplates(data map[string]any, event map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = substituteValue(v, event)
	}
	return out
}

func substituteValue(value any, event map[string]any) any {
	switch v := value.(type) {
	case string:
		return substituteString(v, event)
	case map[string]any:
		return substituteTemplates(v, event)
	case []any:
		out := make([]any, len(v))
		for i, member := range v {
			out[i] = substituteValue(member, event)
		}
		return out
	default:
		return value
	}
}

func substituteString(s string, event map[string]any) string {
	return templateToken.ReplaceAllStringFunc(s, func(token string) string {
		path := token[2 : len(token)-1]
		value, ok := lookupPath(event, path)
		if !ok {
			return token
		}
		return stringify(value)
	})
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
