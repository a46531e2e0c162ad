package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/chainlog"
	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

// Engine evaluates ledger events against the stored rules and executes the
// actions of every rule that matches. Rules live on the main chain and are
// reloaded on every call; rule storage is append-only, so the newest item
// per rule name is the authoritative version.
type Engine struct {
	log       chainlog.Log
	merger    Merger
	validator Validator
	ids       IDGenerator
	clock     Clock
	recorder  ActivityRecorder
	keys      *keyLocks
	logger    *slog.Logger
}

func NewEngine(log chainlog.Log, merger Merger, validator Validator, ids IDGenerator, clock Clock, recorder ActivityRecorder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		log:       log,
		merger:    merger,
		validator: validator,
		ids:       ids,
		clock:     clock,
		recorder:  recorder,
		keys:      newKeyLocks(),
		logger:    logger,
	}
}

// CreateRule validates and publishes a rule under its name. Publishing an
// existing name supersedes the earlier version.
func (e *Engine) CreateRule(ctx context.Context, rule domain.Rule) (CreateResult, error) {
	if err := rule.Validate(); err != nil {
		return CreateResult{}, err
	}

	now := e.clock.Now().Unix()
	if rule.CreatedAt == 0 {
		rule.CreatedAt = now
	}
	rule.LastUpdated = now

	document, err := json.Marshal(rule)
	if err != nil {
		return CreateResult{}, fmt.Errorf("encode rule: %w", err)
	}
	if err := e.validator.ValidateRule(ctx, document); err != nil {
		return CreateResult{}, err
	}

	txID, err := e.log.Append(ctx, domain.ChainMain, domain.StreamRules, rule.RuleName, rule)
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{RuleID: rule.RuleName, TxID: txID}, nil
}

// loadRules returns the newest version per rule name, in order of first
// appearance. Undecodable entries are skipped.
func (e *Engine) loadRules(ctx context.Context) ([]domain.Rule, error) {
	entries, err := e.log.List(ctx, domain.ChainMain, domain.StreamRules)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]domain.Rule)
	var order []string
	for _, entry := range entries {
		var rule domain.Rule
		if err := json.Unmarshal(entry.Value, &rule); err != nil || rule.RuleName == "" {
			continue
		}
		if _, seen := latest[rule.RuleName]; !seen {
			order = append(order, rule.RuleName)
		}
		latest[rule.RuleName] = rule
	}

	rules := make([]domain.Rule, 0, len(latest))
	for _, name := range order {
		rules = append(rules, latest[name])
	}
	return rules, nil
}

// ProcessEvent evaluates every enabled rule against the event. With
// testOnly set, matches are reported without side effects. Action failures
// are captured per rule; one failing rule never stops the others.
func (e *Engine) ProcessEvent(ctx context.Context, event map[string]any, testOnly bool) (ProcessResult, error) {
	if len(event) == 0 {
		return ProcessResult{}, ErrEventRequired
	}

	rules, err := e.loadRules(ctx)
	if err != nil {
		return ProcessResult{}, err
	}

	result := ProcessResult{TestOnly: testOnly}
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		result.RulesEvaluated++

		outcome := RuleOutcome{RuleName: rule.RuleName}
		outcome.Matched = EvaluateConditions(event, rule.TriggerConditions)
		if outcome.Matched {
			result.RulesMatched++
			if !testOnly {
				e.fireRule(ctx, rule, event, &outcome)
			}
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func (e *Engine) fireRule(ctx context.Context, rule domain.Rule, event map[string]any, outcome *RuleOutcome) {
	for _, action := range rule.Actions {
		actionResult := e.executeAction(ctx, action, event)
		outcome.Results = append(outcome.Results, actionResult)
		if actionResult.Success {
			outcome.ActionsExecuted++
		} else {
			e.logger.Warn("rule action failed",
				"rule", rule.RuleName, "action", action.Type, "error", actionResult.Error)
		}
	}

	execution := domain.RuleExecution{
		RuleID:        rule.RuleName,
		Event:         event,
		ActionResults: outcome.Results,
		Timestamp:     e.clock.Now().Unix(),
	}
	executionID, err := e.ids.NewID()
	if err != nil {
		outcome.Error = fmt.Sprintf("generate execution id: %v", err)
		return
	}
	auditKey := rule.RuleName + "_" + executionID
	if _, err := e.log.Append(ctx, domain.ChainMain, domain.StreamRuleExecutions, auditKey, execution); err != nil {
		outcome.Error = fmt.Sprintf("write execution audit: %v", err)
		return
	}
	_ = e.recorder.RecordActivity(ctx, "rule_execution", domain.ChainMain, rule.RuleName, execution)
}
