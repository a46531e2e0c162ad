package domain

// Stream names used across the three ledgers. Streams are append-only keyed
// logs; "updating" a key means publishing a new item under it and readers
// take the newest item as current.
const (
	StreamSidechainRoots = "sidechain_merkle_roots"
	StreamLocalRoots     = "merkle_roots"
	StreamTransfers      = "cross_chain_transfers"
	StreamRules          = "business_rules"
	StreamRuleExecutions = "rule_executions"
	StreamAuditLog       = "audit_log"
	StreamNotifications  = "notifications"
	StreamProducts       = "products"
	StreamTransactions   = "transactions"
)
