package repositories

import (
	"context"
	"time"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// TransactionFilter narrows transaction listings. Nil time bounds and empty
// fields mean "no constraint".
type TransactionFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Type     domain.TransactionType
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of a user's transactions,
	// ordered by date descending then ID.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, offset int) ([]domain.Transaction, error)

	// ListAllTransactions retrieves every transaction of a user in the given
	// date range, for statement aggregation.
	ListAllTransactions(ctx context.Context, userID string, from *time.Time, to *time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpsertTransactions persists a batch, skipping IDs that already exist.
	UpsertTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction updates an existing transaction's details.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionCategories sets the category for each transaction ID in updates.
	UpdateTransactionCategories(ctx context.Context, userID string, updates map[string]string, updatedBy string, now time.Time) error

	// ReplaceCategoryRefs renames every reference to a category on a user's transactions.
	ReplaceCategoryRefs(ctx context.Context, userID string, oldName string, newName string, updatedBy string, now time.Time) error

	// DeleteTransaction removes a transaction permanently.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
