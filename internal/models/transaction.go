package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	UserID              string          `db:"user_id"`
	EntityID            string          `db:"entity_id"` // Nullable
	Date                time.Time       `db:"date"`
	Description         string          `db:"description"`
	OriginalDescription string          `db:"original_description"`
	Amount              decimal.Decimal `db:"amount"`
	Type                string          `db:"type"`
	Category            string          `db:"category"` // Empty when uncategorized
	AuditFields
}
