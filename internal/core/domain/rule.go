package domain

// CategorizationRule maps a keyword found in a transaction description to a
// target category. Rules are deterministic: the longest matching keyword wins,
// ties broken by creation order.
type CategorizationRule struct {
	RuleID         string `json:"ruleID"` // Primary Key (e.g., UUID)
	UserID         string `json:"userID"` // FK -> users.user_id (Not Null)
	Keyword        string `json:"keyword"`
	TargetCategory string `json:"targetCategory"`
	// TargetType constrains the rule to one transaction direction.
	// Empty means the rule applies to both INCOME and EXPENSE.
	TargetType TransactionType `json:"targetType"`
	AuditFields
}
