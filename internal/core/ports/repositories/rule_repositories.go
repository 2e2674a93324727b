package repositories

import (
	"context"
	"time"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// RuleReader defines read operations for categorization rule data
type RuleReader interface {
	// FindRuleByID retrieves a specific rule by its unique identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error)

	// ListRules retrieves all rules for a user in creation order.
	ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error)
}

// RuleWriter defines write operations for categorization rule data
type RuleWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.CategorizationRule) error

	// UpdateRule updates an existing rule's details.
	UpdateRule(ctx context.Context, rule domain.CategorizationRule) error

	// RenameTargetCategory renames every rule target matching oldName.
	RenameTargetCategory(ctx context.Context, userID string, oldName string, newName string, updatedBy string, now time.Time) error

	// DeleteRule removes a rule permanently.
	DeleteRule(ctx context.Context, ruleID string) error
}

// RuleRepositoryFacade combines all rule-related repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
