package services

import (
	"context"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

// CategorySvcFacade defines the category management operations.
type CategorySvcFacade interface {
	// CreateCategory persists a new category, rejecting duplicate names.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// GetCategoryByID retrieves a category owned by userID.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all of the user's categories.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// UpdateCategory updates a category. A rename cascades to the user's
	// transactions and rule targets.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category, reassigning its transactions to the
	// fallback category.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}
