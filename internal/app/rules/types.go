package rules

import "github.com/Icarus-afk/dist-ledger-sub000/internal/domain"

// RuleOutcome is the per-rule result of processing one event.
type RuleOutcome struct {
	RuleName        string                `json:"ruleName"`
	Matched         bool                  `json:"matched"`
	ActionsExecuted int                   `json:"actionsExecuted"`
	Results         []domain.ActionResult `json:"results,omitempty"`
	Error           string                `json:"error,omitempty"`
}

type ProcessResult struct {
	RulesEvaluated int           `json:"rulesEvaluated"`
	RulesMatched   int           `json:"rulesMatched"`
	TestOnly       bool          `json:"testOnly"`
	Outcomes       []RuleOutcome `json:"outcomes"`
}

type CreateResult struct {
	RuleID string `json:"ruleId"`
	TxID   string `json:"txId"`
}
