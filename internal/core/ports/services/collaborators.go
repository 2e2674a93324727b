package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// ProposedTransaction is a transaction candidate extracted from a document,
// before IDs and audit fields are assigned.
type ProposedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Category    string
}

// DocumentExtractor turns an uploaded document into transaction candidates.
type DocumentExtractor interface {
	// ExtractTransactions parses content and returns the transactions found.
	ExtractTransactions(ctx context.Context, filename string, content []byte) ([]ProposedTransaction, error)
}

// InsightGenerator produces a plain-language narrative for a statement.
type InsightGenerator interface {
	// GenerateInsight summarizes the given P&L report.
	GenerateInsight(ctx context.Context, report domain.PLReport) (string, error)
}
