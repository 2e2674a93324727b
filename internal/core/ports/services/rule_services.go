package services

import (
	"context"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

// RuleSvcFacade defines the categorization rule operations.
type RuleSvcFacade interface {
	// CreateRule persists a new rule.
	CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error)

	// GetRuleByID retrieves a rule owned by userID.
	GetRuleByID(ctx context.Context, userID string, ruleID string) (*domain.CategorizationRule, error)

	// ListRules retrieves all of the user's rules in creation order.
	ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error)

	// UpdateRule updates a rule's details.
	UpdateRule(ctx context.Context, userID string, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error)

	// DeleteRule removes a rule. Already-applied categorizations are kept.
	DeleteRule(ctx context.Context, userID string, ruleID string) error

	// ApplyRules runs the user's full ruleset over all their transactions and
	// persists the categories that changed. Returns the number updated.
	ApplyRules(ctx context.Context, userID string) (int, error)
}
