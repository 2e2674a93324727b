package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

// StatementReaderSvc defines the financial statement builds.
type StatementReaderSvc interface {
	// GetProfitAndLoss builds the user's P&L over the date range. Nil bounds
	// mean an unbounded range.
	GetProfitAndLoss(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.PLReport, error)

	// GetBalanceSheet builds the user's balance sheet as of the end of the
	// range, with overrides and adjustments applied.
	GetBalanceSheet(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.BalanceSheetReport, error)

	// NarrateProfitAndLoss generates a plain-language summary of the P&L.
	NarrateProfitAndLoss(ctx context.Context, userID string, from *time.Time, to *time.Time) (string, error)
}

// StatementTuningSvc defines the manual corrections applied to statements.
type StatementTuningSvc interface {
	// SetOverride pins a balance sheet line to a manual amount.
	SetOverride(ctx context.Context, userID string, lineName string, amount decimal.Decimal) error

	// ClearOverride removes the pin from a line.
	ClearOverride(ctx context.Context, userID string, lineName string) error

	// ListOverrides retrieves the user's overrides keyed by lowercase line name.
	ListOverrides(ctx context.Context, userID string) (map[string]decimal.Decimal, error)

	// CreateAdjustment persists a manual balance sheet line.
	CreateAdjustment(ctx context.Context, userID string, req dto.CreateAdjustmentRequest) (*domain.BalanceSheetAdjustment, error)

	// UpdateAdjustment updates a manual balance sheet line.
	UpdateAdjustment(ctx context.Context, userID string, adjustmentID string, req dto.UpdateAdjustmentRequest) (*domain.BalanceSheetAdjustment, error)

	// ListAdjustments retrieves the user's adjustments in creation order.
	ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceSheetAdjustment, error)

	// DeleteAdjustment removes a manual balance sheet line.
	DeleteAdjustment(ctx context.Context, userID string, adjustmentID string) error
}

// StatementSvcFacade combines all statement-related service interfaces
type StatementSvcFacade interface {
	StatementReaderSvc
	StatementTuningSvc
}
