package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// CreateTransactionRequest defines the payload for creating a transaction manually.
type CreateTransactionRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category    string          `json:"category"`
	EntityID    string          `json:"entityID"`
}

// UpdateTransactionRequest defines the payload for updating a transaction.
// Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category    *string          `json:"category"`
	EntityID    *string          `json:"entityID"`
}

// CategorizeTransactionRequest assigns a category to a transaction, optionally
// spreading it across similar transactions.
type CategorizeTransactionRequest struct {
	Category       string `json:"category" binding:"required"`
	ApplyToSimilar bool   `json:"applyToSimilar"`
}

// IngestDocumentRequest carries a document for transaction extraction.
// Content is base64-encoded by gin's []byte JSON binding.
type IngestDocumentRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  []byte `json:"content" binding:"required"`
}

// ListTransactionsParams narrows and pages a transaction listing.
type ListTransactionsParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Category  string     `form:"category"`
	Type      string     `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string     `form:"nextToken"`
}

// TransactionResponse is the API shape of a transaction.
type TransactionResponse struct {
	TransactionID       string          `json:"transactionID"`
	EntityID            string          `json:"entityID,omitempty"`
	Date                time.Time       `json:"date"`
	Description         string          `json:"description"`
	OriginalDescription string          `json:"originalDescription"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	Category            string          `json:"category"`
	CreatedAt           time.Time       `json:"createdAt"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// ListTransactionsResponse is a page of transactions plus the cursor for the
// next page, absent on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// SimilarTransactionResponse pairs a transaction with its similarity score.
type SimilarTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Score       int                 `json:"score"`
}

// CategorizeTransactionResponse reports how many transactions were updated.
type CategorizeTransactionResponse struct {
	Updated int `json:"updated"`
}

// ToTransactionResponse maps a domain transaction to its API shape, rounding
// the amount to cents for display.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		EntityID:            txn.EntityID,
		Date:                txn.Date,
		Description:         txn.Description,
		OriginalDescription: txn.OriginalDescription,
		Amount:              txn.Amount.Round(2),
		Type:                string(txn.Type),
		Category:            txn.Category,
		CreatedAt:           txn.CreatedAt,
		LastUpdatedAt:       txn.LastUpdatedAt,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, ToTransactionResponse(txn))
	}
	return out
}
