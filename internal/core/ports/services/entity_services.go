package services

import (
	"context"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

// EntitySvcFacade defines the counterparty profile operations.
type EntitySvcFacade interface {
	// CreateEntity persists a new vendor or client profile.
	CreateEntity(ctx context.Context, userID string, req dto.CreateEntityRequest) (*domain.Entity, error)

	// GetEntityByID retrieves an entity owned by userID.
	GetEntityByID(ctx context.Context, userID string, entityID string) (*domain.Entity, error)

	// ListEntities retrieves the user's entities, optionally filtered by kind.
	ListEntities(ctx context.Context, userID string, kind domain.EntityKind) ([]domain.Entity, error)

	// UpdateEntity updates an entity's details.
	UpdateEntity(ctx context.Context, userID string, entityID string, req dto.UpdateEntityRequest) (*domain.Entity, error)

	// DeleteEntity removes an entity. Linked transactions are detached, not
	// deleted.
	DeleteEntity(ctx context.Context, userID string, entityID string) error
}
