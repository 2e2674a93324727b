package models

// Category is the categories table row.
type Category struct {
	CategoryID  string `db:"category_id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"` // Nullable
	AuditFields
}

// CategorizationRule is the categorization_rules table row.
type CategorizationRule struct {
	RuleID         string `db:"rule_id"`
	UserID         string `db:"user_id"`
	Keyword        string `db:"keyword"`
	TargetCategory string `db:"target_category"`
	TargetType     string `db:"target_type"` // Nullable
	AuditFields
}
