package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	"github.com/finsight-hq/finsight_backend/internal/models"
)

type PgxRuleRepository struct {
	pool *pgxpool.Pool
}

func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{pool: pool}
}

var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

func toDomainRule(m models.CategorizationRule) domain.CategorizationRule {
	return domain.CategorizationRule{
		RuleID:         m.RuleID,
		UserID:         m.UserID,
		Keyword:        m.Keyword,
		TargetCategory: m.TargetCategory,
		TargetType:     domain.TransactionType(m.TargetType),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const ruleColumns = `rule_id, user_id, keyword, target_category, target_type, created_at, created_by, last_updated_at, last_updated_by`

func scanRule(row pgx.Row) (models.CategorizationRule, error) {
	var m models.CategorizationRule
	var targetType sql.NullString
	err := row.Scan(
		&m.RuleID, &m.UserID, &m.Keyword, &m.TargetCategory, &targetType,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.CategorizationRule{}, err
	}
	m.TargetType = targetType.String
	return m, nil
}

func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.CategorizationRule) error {
	query := `
		INSERT INTO categorization_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		rule.RuleID, rule.UserID, rule.Keyword, rule.TargetCategory, nullString(string(rule.TargetType)),
		rule.CreatedAt, rule.CreatedBy, rule.LastUpdatedAt, rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rule %s: %w", rule.RuleID, err)
	}
	return nil
}

func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM categorization_rules WHERE rule_id = $1;`
	m, err := scanRule(r.pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleID, err)
	}
	d := toDomainRule(m)
	return &d, nil
}

// ListRules returns rules in creation order, which the matcher relies on for
// tie-breaking between equal-length keywords.
func (r *PgxRuleRepository) ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM categorization_rules WHERE user_id = $1 ORDER BY created_at, rule_id;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.CategorizationRule, 0)
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, toDomainRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return rules, nil
}

func (r *PgxRuleRepository) UpdateRule(ctx context.Context, rule domain.CategorizationRule) error {
	query := `
		UPDATE categorization_rules
		SET keyword = $2, target_category = $3, target_type = $4, last_updated_at = $5, last_updated_by = $6
		WHERE rule_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		rule.RuleID, rule.Keyword, rule.TargetCategory, nullString(string(rule.TargetType)),
		rule.LastUpdatedAt, rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule %s: %w", rule.RuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRuleRepository) RenameTargetCategory(ctx context.Context, userID string, oldName string, newName string, updatedBy string, now time.Time) error {
	query := `
		UPDATE categorization_rules
		SET target_category = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND LOWER(target_category) = LOWER($2);
	`
	if _, err := r.pool.Exec(ctx, query, userID, oldName, newName, now, updatedBy); err != nil {
		return fmt.Errorf("failed to rename rule targets: %w", err)
	}
	return nil
}

func (r *PgxRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categorization_rules WHERE rule_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
