package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	"github.com/finsight-hq/finsight_backend/internal/models"
)

type PgxAdjustmentRepository struct {
	pool *pgxpool.Pool
}

func newPgxAdjustmentRepository(pool *pgxpool.Pool) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{pool: pool}
}

var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

func toDomainAdjustment(m models.BalanceSheetAdjustment) domain.BalanceSheetAdjustment {
	return domain.BalanceSheetAdjustment{
		AdjustmentID: m.AdjustmentID,
		UserID:       m.UserID,
		Name:         m.Name,
		Amount:       m.Amount,
		Type:         domain.AdjustmentType(m.Type),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const adjustmentColumns = `adjustment_id, user_id, name, amount, type, created_at, created_by, last_updated_at, last_updated_by`

func scanAdjustment(row pgx.Row) (models.BalanceSheetAdjustment, error) {
	var m models.BalanceSheetAdjustment
	err := row.Scan(
		&m.AdjustmentID, &m.UserID, &m.Name, &m.Amount, &m.Type,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adj domain.BalanceSheetAdjustment) error {
	query := `
		INSERT INTO balance_sheet_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		adj.AdjustmentID, adj.UserID, adj.Name, adj.Amount, string(adj.Type),
		adj.CreatedAt, adj.CreatedBy, adj.LastUpdatedAt, adj.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment %s: %w", adj.AdjustmentID, err)
	}
	return nil
}

func (r *PgxAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BalanceSheetAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM balance_sheet_adjustments WHERE adjustment_id = $1;`
	m, err := scanAdjustment(r.pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	d := toDomainAdjustment(m)
	return &d, nil
}

func (r *PgxAdjustmentRepository) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceSheetAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM balance_sheet_adjustments WHERE user_id = $1 ORDER BY created_at, adjustment_id;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := make([]domain.BalanceSheetAdjustment, 0)
	for rows.Next() {
		m, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adjustments = append(adjustments, toDomainAdjustment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read adjustments: %w", err)
	}
	return adjustments, nil
}

func (r *PgxAdjustmentRepository) UpdateAdjustment(ctx context.Context, adj domain.BalanceSheetAdjustment) error {
	query := `
		UPDATE balance_sheet_adjustments
		SET name = $2, amount = $3, type = $4, last_updated_at = $5, last_updated_by = $6
		WHERE adjustment_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		adj.AdjustmentID, adj.Name, adj.Amount, string(adj.Type), adj.LastUpdatedAt, adj.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update adjustment %s: %w", adj.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAdjustmentRepository) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM balance_sheet_adjustments WHERE adjustment_id = $1;`, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment %s: %w", adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxOverrideRepository struct {
	pool *pgxpool.Pool
}

func newPgxOverrideRepository(pool *pgxpool.Pool) portsrepo.OverrideRepositoryFacade {
	return &PgxOverrideRepository{pool: pool}
}

var _ portsrepo.OverrideRepositoryFacade = (*PgxOverrideRepository)(nil)

func (r *PgxOverrideRepository) UpsertOverride(ctx context.Context, userID string, lineName string, amount decimal.Decimal, updatedBy string) error {
	query := `
		INSERT INTO statement_overrides (user_id, line_name, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, LOWER($2), $3, $4, $5, $4, $5)
		ON CONFLICT (user_id, line_name)
		DO UPDATE SET amount = EXCLUDED.amount, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := r.pool.Exec(ctx, query, userID, lineName, amount, time.Now(), updatedBy); err != nil {
		return fmt.Errorf("failed to upsert override %q: %w", lineName, err)
	}
	return nil
}

func (r *PgxOverrideRepository) DeleteOverride(ctx context.Context, userID string, lineName string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM statement_overrides WHERE user_id = $1 AND line_name = LOWER($2);`, userID, lineName)
	if err != nil {
		return fmt.Errorf("failed to delete override %q: %w", lineName, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOverrideRepository) ListOverrides(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT line_name, amount FROM statement_overrides WHERE user_id = $1;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]decimal.Decimal)
	for rows.Next() {
		var lineName string
		var amount decimal.Decimal
		if err := rows.Scan(&lineName, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides[lineName] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overrides: %w", err)
	}
	return overrides, nil
}
