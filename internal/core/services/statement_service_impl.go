package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight-hq/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

type statementService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	adjRepo      portsrepo.AdjustmentRepositoryFacade
	overrideRepo portsrepo.OverrideRepositoryFacade
	classifier   *accounting.Classifier
	insight      portssvc.InsightGenerator
	now          func() time.Time
}

// StatementServiceOption configures the statement service.
type StatementServiceOption func(*statementService)

// WithInsightGenerator wires the collaborator behind NarrateProfitAndLoss.
func WithInsightGenerator(insight portssvc.InsightGenerator) StatementServiceOption {
	return func(s *statementService) {
		s.insight = insight
	}
}

// NewStatementService creates a statement service.
func NewStatementService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	adjRepo portsrepo.AdjustmentRepositoryFacade,
	overrideRepo portsrepo.OverrideRepositoryFacade,
	classifier *accounting.Classifier,
	opts ...StatementServiceOption,
) portssvc.StatementSvcFacade {
	s := &statementService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		adjRepo:      adjRepo,
		overrideRepo: overrideRepo,
		classifier:   classifier,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

func (s *statementService) GetProfitAndLoss(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.PLReport, error) {
	txns, err := s.txnRepo.ListAllTransactions(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for P&L")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	report := accounting.BuildProfitAndLoss(txns, accounting.NewRegistry(categories), s.classifier)
	return &report, nil
}

func (s *statementService) GetBalanceSheet(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.BalanceSheetReport, error) {
	txns, err := s.txnRepo.ListAllTransactions(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for balance sheet")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	adjustments, err := s.adjRepo.ListAdjustments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	overrides, err := s.overrideRepo.ListOverrides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}

	report := accounting.BuildBalanceSheet(txns, accounting.NewRegistry(categories), adjustments, overrides, s.classifier)
	if !report.Balanced() {
		s.LogInfo(ctx, "Balance sheet does not balance",
			"total_assets", report.TotalAssets.String(),
			"total_liabilities_and_equity", report.TotalLiabilitiesAndEquity.String())
	}
	return &report, nil
}

func (s *statementService) NarrateProfitAndLoss(ctx context.Context, userID string, from *time.Time, to *time.Time) (string, error) {
	if s.insight == nil {
		return "", fmt.Errorf("%w: insight generation is not configured", apperrors.ErrValidation)
	}
	report, err := s.GetProfitAndLoss(ctx, userID, from, to)
	if err != nil {
		return "", err
	}
	narrative, err := s.insight.GenerateInsight(ctx, *report)
	if err != nil {
		s.LogError(ctx, err, "Insight generation failed")
		return "", fmt.Errorf("failed to generate insight: %w", err)
	}
	return narrative, nil
}

func (s *statementService) SetOverride(ctx context.Context, userID string, lineName string, amount decimal.Decimal) error {
	name := strings.ToLower(strings.TrimSpace(lineName))
	if name == "" {
		return fmt.Errorf("%w: line name is required", apperrors.ErrValidation)
	}
	if err := s.overrideRepo.UpsertOverride(ctx, userID, name, amount, userID); err != nil {
		s.LogError(ctx, err, "Failed to set override", "line", name)
		return fmt.Errorf("failed to set override: %w", err)
	}
	s.LogInfo(ctx, "Statement line overridden", "line", name)
	return nil
}

func (s *statementService) ClearOverride(ctx context.Context, userID string, lineName string) error {
	name := strings.ToLower(strings.TrimSpace(lineName))
	if err := s.overrideRepo.DeleteOverride(ctx, userID, name); err != nil {
		s.LogError(ctx, err, "Failed to clear override", "line", name)
		return fmt.Errorf("failed to clear override: %w", err)
	}
	return nil
}

func (s *statementService) ListOverrides(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	overrides, err := s.overrideRepo.ListOverrides(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overrides")
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	return overrides, nil
}

func (s *statementService) CreateAdjustment(ctx context.Context, userID string, req dto.CreateAdjustmentRequest) (*domain.BalanceSheetAdjustment, error) {
	now := s.now()
	adj := domain.BalanceSheetAdjustment{
		AdjustmentID: uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Amount:       req.Amount,
		Type:         domain.AdjustmentType(req.Type),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if adj.Name == "" {
		return nil, fmt.Errorf("%w: adjustment name is required", apperrors.ErrValidation)
	}
	if err := s.adjRepo.SaveAdjustment(ctx, adj); err != nil {
		s.LogError(ctx, err, "Failed to save adjustment", "name", adj.Name)
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}
	return &adj, nil
}

func (s *statementService) UpdateAdjustment(ctx context.Context, userID string, adjustmentID string, req dto.UpdateAdjustmentRequest) (*domain.BalanceSheetAdjustment, error) {
	adj, err := s.ownedAdjustment(ctx, userID, adjustmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: adjustment name is required", apperrors.ErrValidation)
		}
		adj.Name = name
	}
	if req.Amount != nil {
		adj.Amount = *req.Amount
	}
	if req.Type != nil {
		adj.Type = domain.AdjustmentType(*req.Type)
	}

	adj.LastUpdatedAt = s.now()
	adj.LastUpdatedBy = userID

	if err := s.adjRepo.UpdateAdjustment(ctx, *adj); err != nil {
		s.LogError(ctx, err, "Failed to update adjustment", "adjustment_id", adjustmentID)
		return nil, fmt.Errorf("failed to update adjustment: %w", err)
	}
	return adj, nil
}

func (s *statementService) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceSheetAdjustment, error) {
	adjustments, err := s.adjRepo.ListAdjustments(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list adjustments")
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return adjustments, nil
}

func (s *statementService) DeleteAdjustment(ctx context.Context, userID string, adjustmentID string) error {
	if _, err := s.ownedAdjustment(ctx, userID, adjustmentID); err != nil {
		return err
	}
	if err := s.adjRepo.DeleteAdjustment(ctx, adjustmentID); err != nil {
		s.LogError(ctx, err, "Failed to delete adjustment", "adjustment_id", adjustmentID)
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	return nil
}

func (s *statementService) ownedAdjustment(ctx context.Context, userID string, adjustmentID string) (*domain.BalanceSheetAdjustment, error) {
	adj, err := s.adjRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment: %w", err)
	}
	if adj.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return adj, nil
}
