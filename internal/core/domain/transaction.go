package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction. The amount is
// always a non-negative magnitude; the sign convention is derived from the
// type at the point of use, never baked into the number.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a single financial event extracted from a document
// or entered by hand. Once recorded it is immutable except for its
// classification fields (Description, Category, EntityID).
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	UserID        string          `json:"userID"`        // FK -> users.user_id (Not Null)
	EntityID      string          `json:"entityID"`      // Nullable FK -> entities.entity_id
	Date          time.Time       `json:"date"`          // Day precision
	Description   string          `json:"description"`
	// OriginalDescription preserves the text as extracted, so keyword rules
	// keep matching after a user edits Description.
	OriginalDescription string          `json:"originalDescription"`
	Amount              decimal.Decimal `json:"amount"` // Non-negative magnitude
	Type                TransactionType `json:"type"`   // INCOME or EXPENSE
	Category            string          `json:"category"`
	AuditFields
}

// Validate checks the invariants every recorded transaction must satisfy.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must be non-negative, got %s", t.Amount.String())
	}
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("transaction type must be INCOME or EXPENSE, got %q", t.Type)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
