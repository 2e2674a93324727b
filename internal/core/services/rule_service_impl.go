package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

type ruleService struct {
	BaseService
	ruleRepo     portsrepo.RuleRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	now          func() time.Time
}

// NewRuleService creates a categorization rule service.
func NewRuleService(
	ruleRepo portsrepo.RuleRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
) portssvc.RuleSvcFacade {
	return &ruleService{
		ruleRepo:     ruleRepo,
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

func (s *ruleService) CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error) {
	keyword := strings.TrimSpace(req.Keyword)
	target := strings.TrimSpace(req.TargetCategory)
	if keyword == "" || target == "" {
		return nil, fmt.Errorf("%w: keyword and target category are required", apperrors.ErrValidation)
	}

	if err := s.ensureTargetCategory(ctx, userID, target); err != nil {
		return nil, err
	}

	now := s.now()
	rule := domain.CategorizationRule{
		RuleID:         uuid.NewString(),
		UserID:         userID,
		Keyword:        keyword,
		TargetCategory: target,
		TargetType:     domain.TransactionType(req.TargetType),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save rule", "keyword", keyword)
		return nil, fmt.Errorf("failed to save rule: %w", err)
	}
	return &rule, nil
}

func (s *ruleService) GetRuleByID(ctx context.Context, userID string, ruleID string) (*domain.CategorizationRule, error) {
	return s.ownedRule(ctx, userID, ruleID)
}

func (s *ruleService) ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	rules, err := s.ruleRepo.ListRules(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules")
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

func (s *ruleService) UpdateRule(ctx context.Context, userID string, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error) {
	rule, err := s.ownedRule(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Keyword != nil {
		keyword := strings.TrimSpace(*req.Keyword)
		if keyword == "" {
			return nil, fmt.Errorf("%w: keyword is required", apperrors.ErrValidation)
		}
		rule.Keyword = keyword
	}
	if req.TargetCategory != nil {
		target := strings.TrimSpace(*req.TargetCategory)
		if target == "" {
			return nil, fmt.Errorf("%w: target category is required", apperrors.ErrValidation)
		}
		if err := s.ensureTargetCategory(ctx, userID, target); err != nil {
			return nil, err
		}
		rule.TargetCategory = target
	}
	if req.TargetType != nil {
		rule.TargetType = domain.TransactionType(*req.TargetType)
	}

	rule.LastUpdatedAt = s.now()
	rule.LastUpdatedBy = userID

	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update rule", "rule_id", ruleID)
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}
	return rule, nil
}

func (s *ruleService) DeleteRule(ctx context.Context, userID string, ruleID string) error {
	if _, err := s.ownedRule(ctx, userID, ruleID); err != nil {
		return err
	}
	if err := s.ruleRepo.DeleteRule(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete rule", "rule_id", ruleID)
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return nil
}

func (s *ruleService) ApplyRules(ctx context.Context, userID string) (int, error) {
	rules, err := s.ruleRepo.ListRules(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list rules: %w", err)
	}
	if len(rules) == 0 {
		return 0, nil
	}

	txns, err := s.txnRepo.ListAllTransactions(ctx, userID, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	categorized := accounting.ApplyRules(txns, rules)

	updates := make(map[string]string)
	for i := range txns {
		if categorized[i].Category != txns[i].Category {
			updates[categorized[i].TransactionID] = categorized[i].Category
		}
	}
	if len(updates) == 0 {
		return 0, nil
	}

	if err := s.txnRepo.UpdateTransactionCategories(ctx, userID, updates, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to persist rule run")
		return 0, fmt.Errorf("failed to persist rule run: %w", err)
	}
	s.LogInfo(ctx, "Rules applied", "updated", len(updates))
	return len(updates), nil
}

// ensureTargetCategory creates the target category when it does not exist,
// so rule runs never produce categories missing from the registry.
func (s *ruleService) ensureTargetCategory(ctx context.Context, userID string, name string) error {
	_, err := s.categoryRepo.FindCategoryByName(ctx, userID, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to find category: %w", err)
	}

	now := s.now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (s *ruleService) ownedRule(ctx context.Context, userID string, ruleID string) (*domain.CategorizationRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}
	if rule.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return rule, nil
}
