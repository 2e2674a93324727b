package dto

import (
	"time"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"omitempty,accounttype"`
}

// UpdateCategoryRequest defines the payload for updating a category.
// Renaming cascades to transactions and rules.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	AccountType *string `json:"accountType" binding:"omitempty,accounttype"`
}

// CategoryResponse is the API shape of a category.
type CategoryResponse struct {
	CategoryID    string    `json:"categoryID"`
	Name          string    `json:"name"`
	AccountType   string    `json:"accountType,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCategoryResponse maps a domain category to its API shape.
func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		AccountType:   string(c.AccountType),
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}
