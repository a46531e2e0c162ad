package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ruleSchema constrains rule documents before they are published to the
// business_rules stream. Operators are not restricted here: the engine
// treats unknown operators as non-matching rather than invalid.
const ruleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["ruleName", "triggerConditions", "actions"],
  "properties": {
    "ruleName": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "enabled": {"type": "boolean"},
    "triggerConditions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["field", "operator"],
        "properties": {
          "field": {"type": "string", "minLength": 1},
          "operator": {"type": "string", "minLength": 1}
        }
      }
    },
    "actions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"enum": ["recordTransaction", "notifyChain", "updateStatus"]}
        }
      }
    }
  }
}`

type RuleValidator struct {
	compiled *jsonschema.Schema
}

func NewRuleValidator() (*RuleValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rule.json", strings.NewReader(ruleSchema)); err != nil {
		return nil, fmt.Errorf("load rule schema: %w", err)
	}
	compiled, err := compiler.Compile("rule.json")
	if err != nil {
		return nil, fmt.Errorf("compile rule schema: %w", err)
	}
	return &RuleValidator{compiled: compiled}, nil
}

func (v *RuleValidator) ValidateRule(ctx context.Context, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(document, &decoded); err != nil {
		return fmt.Errorf("decode rule document: %w", err)
	}
	if err := v.compiled.Validate(decoded); err != nil {
		return fmt.Errorf("rule document invalid: %w", err)
	}
	return nil
}
