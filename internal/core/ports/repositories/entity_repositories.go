package repositories

import (
	"context"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// EntityReader defines read operations for counterparty profile data
type EntityReader interface {
	// FindEntityByID retrieves a specific entity by its unique identifier.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)

	// ListEntities retrieves all entities for a user, optionally filtered by kind.
	ListEntities(ctx context.Context, userID string, kind domain.EntityKind) ([]domain.Entity, error)
}

// EntityWriter defines write operations for counterparty profile data
type EntityWriter interface {
	// SaveEntity persists a new entity.
	SaveEntity(ctx context.Context, entity domain.Entity) error

	// UpdateEntity updates an existing entity's details.
	UpdateEntity(ctx context.Context, entity domain.Entity) error

	// DeleteEntity removes an entity permanently.
	DeleteEntity(ctx context.Context, entityID string) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
