package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	"github.com/finsight-hq/finsight_backend/internal/models"
)

type PgxEntityRepository struct {
	pool *pgxpool.Pool
}

func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{pool: pool}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

func toDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID: m.EntityID,
		UserID:   m.UserID,
		Name:     m.Name,
		Kind:     domain.EntityKind(m.Kind),
		Notes:    m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const entityColumns = `entity_id, user_id, name, kind, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanEntity(row pgx.Row) (models.Entity, error) {
	var m models.Entity
	var notes sql.NullString
	err := row.Scan(
		&m.EntityID, &m.UserID, &m.Name, &m.Kind, &notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.Entity{}, err
	}
	m.Notes = notes.String
	return m, nil
}

func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	query := `
		INSERT INTO entities (` + entityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		entity.EntityID, entity.UserID, entity.Name, string(entity.Kind), nullString(entity.Notes),
		entity.CreatedAt, entity.CreatedBy, entity.LastUpdatedAt, entity.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save entity %s: %w", entity.EntityID, err)
	}
	return nil
}

func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE entity_id = $1;`
	m, err := scanEntity(r.pool.QueryRow(ctx, query, entityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity %s: %w", entityID, err)
	}
	d := toDomainEntity(m)
	return &d, nil
}

func (r *PgxEntityRepository) ListEntities(ctx context.Context, userID string, kind domain.EntityKind) ([]domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE user_id = $1`
	args := []any{userID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, string(kind))
	}
	query += ` ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	entities := make([]domain.Entity, 0)
	for rows.Next() {
		m, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, toDomainEntity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entities: %w", err)
	}
	return entities, nil
}

func (r *PgxEntityRepository) UpdateEntity(ctx context.Context, entity domain.Entity) error {
	query := `
		UPDATE entities
		SET name = $2, kind = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entity_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		entity.EntityID, entity.Name, string(entity.Kind), nullString(entity.Notes),
		entity.LastUpdatedAt, entity.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entity %s: %w", entity.EntityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntity removes the profile. The transactions FK is ON DELETE SET
// NULL, so linked transactions are detached by the database.
func (r *PgxEntityRepository) DeleteEntity(ctx context.Context, entityID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entities WHERE entity_id = $1;`, entityID)
	if err != nil {
		return fmt.Errorf("failed to delete entity %s: %w", entityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
