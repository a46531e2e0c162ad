package schema

import (
	"context"
	"testing"
)

func newValidator(t *testing.T) *RuleValidator {
	t.Helper()
	validator, err := NewRuleValidator()
	if err != nil {
		t.Fatalf("NewRuleValidator: %v", err)
	}
	return validator
}

func TestValidateRuleAccepts(t *testing.T) {
	validator := newValidator(t)
	document := []byte(`{
		"ruleName": "low-stock-alert",
		"triggerConditions": [{"field": "product.quantity", "operator": "<", "value": 10}],
		"actions": [{"type": "notifyChain", "targetChain": "distributor-chain", "notificationType": "low_stock"}],
		"enabled": true
	}`)
	if err := validator.ValidateRule(context.Background(), document); err != nil {
		t.Fatalf("expected valid rule, got %v", err)
	}
}

func TestValidateRuleRequiresActions(t *testing.T) {
	validator := newValidator(t)
	document := []byte(`{"ruleName": "noop", "triggerConditions": [], "actions": []}`)
	if err := validator.ValidateRule(context.Background(), document); err == nil {
		t.Fatalf("expected error for empty actions")
	}
}

func TestValidateRuleRejectsUnknownActionType(t *testing.T) {
	validator := newValidator(t)
	document := []byte(`{
		"ruleName": "bad",
		"triggerConditions": [],
		"actions": [{"type": "webhook"}]
	}`)
	if err := validator.ValidateRule(context.Background(), document); err == nil {
		t.Fatalf("expected error for unknown action type")
	}
}

func TestValidateRuleRejectsNonJSON(t *testing.T) {
	validator := newValidator(t)
	if err := validator.ValidateRule(context.Background(), []byte("not json")); err == nil {
		t.Fatalf("expected error for invalid document")
	}
}
