package domain

import "github.com/shopspring/decimal"

// AdjustmentType selects the balance sheet section an adjustment is added to.
type AdjustmentType string

const (
	AdjustmentAsset     AdjustmentType = "ASSET"
	AdjustmentLiability AdjustmentType = "LIABILITY"
)

// BalanceSheetAdjustment is a manually entered statement line with no
// corresponding transactions. It participates fully in section totals but is
// never subject to overrides, since it has no computed counterpart.
type BalanceSheetAdjustment struct {
	AdjustmentID string          `json:"adjustmentID"` // Primary Key (e.g., UUID)
	UserID       string          `json:"userID"`       // FK -> users.user_id (Not Null)
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"` // Signed
	Type         AdjustmentType  `json:"type"`   // ASSET or LIABILITY
	AuditFields
}
