package rules

import (
	"reflect"
	"strings"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// EvaluateConditions applies AND semantics: every condition must hold. A
// condition whose field is absent from the event, or whose operator is
// unknown, is false; it never errors the evaluation.
func EvaluateConditions(event map[string]any, conditions []domain.Condition) bool {
	for _, condition := range conditions {
		if !evaluateCondition(event, condition) {
			return false
		}
	}
	return true
}

func evaluateCondition(event map[string]any, condition domain.Condition) bool {
	value, ok := lookupPath(event, condition.Field)
	if !ok {
		return false
	}

	switch condition.Operator {
	case "==", "===":
		return looseEqual(value, condition.Value)
	case "!=", "!==":
		return !looseEqual(value, condition.Value)
	case ">", ">=", "<", "<=":
		return compareOrdered(value, condition.Value, condition.Operator)
	case "contains":
		return containsValue(value, condition.Value)
	case "startsWith":
		left, lok := value.(string)
		right, rok := condition.Value.(string)
		return lok && rok && strings.HasPrefix(left, right)
	case "endsWith":
		left, lok := value.(string)
		right, rok := condition.Value.(string)
		return lok && rok && strings.HasSuffix(left, right)
	default:
		return false
	}
}

// lookupPath traverses nested objects by dot path ("order.item.sku").
func lookupPath(event map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = event
	for _, segment := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func looseEqual(a, b any) bool {
	if fa, aok := toFloat(a); aok {
		if fb, bok := toFloat(b); bok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func compareOrdered(a, b any, op string) bool {
	if fa, aok := toFloat(a); aok {
		if fb, bok := toFloat(b); bok {
			switch op {
			case ">":
				return fa > fb
			case ">=":
				return fa >= fb
			case "<":
				return fa < fb
			case "<=":
				return fa <= fb
			}
		}
		return false
	}

	sa, aok := a.(string)
	sb, bok := b.(string)
	if !aok || !bok {
		return false
	}
	switch op {
	case ">":
		return sa > sb
	case ">=":
		return sa >= sb
	case "<":
		return sa < sb
	case "<=":
		return sa <= sb
	}
	return false
}

func containsValue(haystack, needle any) bool {
	switch h := haystack.(type) {
	case string:
		n, ok := needle.(string)
		return ok && strings.Contains(h, n)
	case []any:
		for _, member := range h {
			if looseEqual(member, needle) {
				return true
			}
		}
	}
	return false
}

// toFloat normalizes the numeric types JSON decoding and Go literals
// produce, so 5 and 5.0 compare equal.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
