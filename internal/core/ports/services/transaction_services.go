package services

import (
	"context"

	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction owned by userID.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of the user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)

	// FindSimilarTransactions ranks the user's other transactions by
	// similarity to the given one.
	FindSimilarTransactions(ctx context.Context, userID string, transactionID string) ([]accounting.SimilarTransaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new manually entered transaction.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction updates an existing transaction's details.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// CategorizeTransaction assigns a category, creating it on first use,
	// and optionally spreads it to similar uncategorized transactions.
	// Returns the number of transactions updated.
	CategorizeTransaction(ctx context.Context, userID string, transactionID string, req dto.CategorizeTransactionRequest) (int, error)

	// IngestDocument extracts transactions from an uploaded document,
	// categorizes them with the user's rules and persists them idempotently.
	IngestDocument(ctx context.Context, userID string, filename string, content []byte) ([]domain.Transaction, error)

	// DeleteTransaction removes a transaction owned by userID.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
