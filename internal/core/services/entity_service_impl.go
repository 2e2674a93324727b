package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

type entityService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
	now        func() time.Time
}

// NewEntityService creates a counterparty profile service.
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{
		entityRepo: entityRepo,
		now:        time.Now,
	}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

func (s *entityService) CreateEntity(ctx context.Context, userID string, req dto.CreateEntityRequest) (*domain.Entity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: entity name is required", apperrors.ErrValidation)
	}

	now := s.now()
	entity := domain.Entity{
		EntityID: uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Kind:     domain.EntityKind(req.Kind),
		Notes:    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		s.LogError(ctx, err, "Failed to save entity", "name", name)
		return nil, fmt.Errorf("failed to save entity: %w", err)
	}
	return &entity, nil
}

func (s *entityService) GetEntityByID(ctx context.Context, userID string, entityID string) (*domain.Entity, error) {
	return s.ownedEntity(ctx, userID, entityID)
}

func (s *entityService) ListEntities(ctx context.Context, userID string, kind domain.EntityKind) ([]domain.Entity, error) {
	entities, err := s.entityRepo.ListEntities(ctx, userID, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities")
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, nil
}

func (s *entityService) UpdateEntity(ctx context.Context, userID string, entityID string, req dto.UpdateEntityRequest) (*domain.Entity, error) {
	entity, err := s.ownedEntity(ctx, userID, entityID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: entity name is required", apperrors.ErrValidation)
		}
		entity.Name = name
	}
	if req.Kind != nil {
		entity.Kind = domain.EntityKind(*req.Kind)
	}
	if req.Notes != nil {
		entity.Notes = *req.Notes
	}

	entity.LastUpdatedAt = s.now()
	entity.LastUpdatedBy = userID

	if err := s.entityRepo.UpdateEntity(ctx, *entity); err != nil {
		s.LogError(ctx, err, "Failed to update entity", "entity_id", entityID)
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}
	return entity, nil
}

func (s *entityService) DeleteEntity(ctx context.Context, userID string, entityID string) error {
	if _, err := s.ownedEntity(ctx, userID, entityID); err != nil {
		return err
	}
	if err := s.entityRepo.DeleteEntity(ctx, entityID); err != nil {
		s.LogError(ctx, err, "Failed to delete entity", "entity_id", entityID)
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return nil
}

func (s *entityService) ownedEntity(ctx context.Context, userID string, entityID string) (*domain.Entity, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity: %w", err)
	}
	if entity.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return entity, nil
}
