package domain

// Condition compares a dot-path field extracted from an event against a
// literal value. A missing field or an unknown operator makes the condition
// false; it never errors.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

const (
	ActionRecordTransaction = "recordTransaction"
	ActionNotifyChain       = "notifyChain"
	ActionUpdateStatus      = "updateStatus"
)

// Action is one typed side effect of a fired rule. Fields are a union over
// the three action types; Validate checks the ones the type requires.
type Action struct {
	Type string `json:"type"`

	// recordTransaction / updateStatus
	Chain  string `json:"chain,omitempty"`
	Stream string `json:"stream,omitempty"`
	Key    string `json:"key,omitempty"`

	// recordTransaction
	Data map[string]any `json:"data,omitempty"`

	// notifyChain
	TargetChain      string `json:"targetChain,omitempty"`
	NotificationType string `json:"notificationType,omitempty"`

	// updateStatus
	NewStatus      string         `json:"newStatus,omitempty"`
	AdditionalData map[string]any `json:"additionalData,omitempty"`
}

func (a Action) Validate() error {
	switch a.Type {
	case ActionRecordTransaction:
		if a.Chain == "" || a.Stream == "" || a.Key == "" {
			return ErrInvalidActionType
		}
	case ActionNotifyChain:
		if a.TargetChain == "" || a.NotificationType == "" {
			return ErrInvalidActionType
		}
	case ActionUpdateStatus:
		if a.Chain == "" || a.Stream == "" || a.Key == "" || a.NewStatus == "" {
			return ErrInvalidActionType
		}
	default:
		return ErrInvalidActionType
	}
	return nil
}

// Rule reacts to ledger events with cross-chain side effects. Rules live in
// the main chain's business_rules stream keyed by name; the newest enabled
// item per name is the authoritative version.
type Rule struct {
	RuleName          string      `json:"ruleName"`
	Description       string      `json:"description,omitempty"`
	TriggerConditions []Condition `json:"triggerConditions"`
	Actions           []Action    `json:"actions"`
	Enabled           bool        `json:"enabled"`
	CreatedAt         int64       `json:"createdAt"`
	LastUpdated       int64       `json:"lastUpdated"`
}

func (r Rule) Validate() error {
	if r.RuleName == "" {
		return ErrRuleNameRequired
	}
	if len(r.Actions) == 0 {
		return ErrActionsRequired
	}
	for _, action := range r.Actions {
		if err := action.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ActionResult records the outcome of one executed action inside a
// RuleExecution audit entry.
type ActionResult struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	TxID    string `json:"txId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RuleExecution is the append-only audit record written after a rule fires.
type RuleExecution struct {
	RuleID        string         `json:"ruleId"`
	Event         map[string]any `json:"event"`
	ActionResults []ActionResult `json:"actionResults"`
	Timestamp     int64          `json:"timestamp"`
}
