package dto

import (
	"time"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// CreateEntityRequest defines the payload for creating a counterparty profile.
type CreateEntityRequest struct {
	Name  string `json:"name" binding:"required"`
	Kind  string `json:"kind" binding:"required,oneof=VENDOR CLIENT"`
	Notes string `json:"notes"`
}

// UpdateEntityRequest defines the payload for updating a counterparty profile.
type UpdateEntityRequest struct {
	Name  *string `json:"name"`
	Kind  *string `json:"kind" binding:"omitempty,oneof=VENDOR CLIENT"`
	Notes *string `json:"notes"`
}

// EntityResponse is the API shape of a counterparty profile.
type EntityResponse struct {
	EntityID      string    `json:"entityID"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToEntityResponse maps a domain entity to its API shape.
func ToEntityResponse(e domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:      e.EntityID,
		Name:          e.Name,
		Kind:          string(e.Kind),
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}
