package models

import "github.com/shopspring/decimal"

// BalanceSheetAdjustment is the balance_sheet_adjustments table row.
type BalanceSheetAdjustment struct {
	AdjustmentID string          `db:"adjustment_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Amount       decimal.Decimal `db:"amount"`
	Type         string          `db:"type"`
	AuditFields
}

// StatementOverride is the statement_overrides table row. LineName is stored
// lowercase; the (user_id, line_name) pair is unique.
type StatementOverride struct {
	UserID   string          `db:"user_id"`
	LineName string          `db:"line_name"`
	Amount   decimal.Decimal `db:"amount"`
	AuditFields
}
