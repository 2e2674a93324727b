package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// AdjustmentRepositoryFacade defines persistence for balance sheet adjustments
type AdjustmentRepositoryFacade interface {
	// FindAdjustmentByID retrieves a specific adjustment by its unique identifier.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BalanceSheetAdjustment, error)

	// ListAdjustments retrieves all adjustments for a user in creation order.
	ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceSheetAdjustment, error)

	// SaveAdjustment persists a new adjustment.
	SaveAdjustment(ctx context.Context, adj domain.BalanceSheetAdjustment) error

	// UpdateAdjustment updates an existing adjustment's details.
	UpdateAdjustment(ctx context.Context, adj domain.BalanceSheetAdjustment) error

	// DeleteAdjustment removes an adjustment permanently.
	DeleteAdjustment(ctx context.Context, adjustmentID string) error
}

// OverrideRepositoryFacade defines persistence for statement line overrides.
// Overrides are keyed by lowercase line name per user.
type OverrideRepositoryFacade interface {
	// UpsertOverride sets the override amount for a line name.
	UpsertOverride(ctx context.Context, userID string, lineName string, amount decimal.Decimal, updatedBy string) error

	// DeleteOverride removes the override for a line name.
	DeleteOverride(ctx context.Context, userID string, lineName string) error

	// ListOverrides retrieves all overrides for a user keyed by lowercase line name.
	ListOverrides(ctx context.Context, userID string) (map[string]decimal.Decimal, error)
}
