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

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	ruleRepo     portsrepo.RuleRepositoryFacade
	now          func() time.Time
}

// NewCategoryService creates a category service.
func NewCategoryService(
	categoryRepo portsrepo.CategoryRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	ruleRepo portsrepo.RuleRepositoryFacade,
) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		ruleRepo:     ruleRepo,
		now:          time.Now,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	accountType := domain.AccountType(req.AccountType)
	if !domain.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	if _, err := s.categoryRepo.FindCategoryByName(ctx, userID, name); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	now := s.now()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		UserID:      userID,
		Name:        name,
		AccountType: accountType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", "category", name)
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	return s.ownedCategory(ctx, userID, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.ownedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.AccountType != nil {
		accountType := domain.AccountType(*req.AccountType)
		if !domain.ValidAccountType(accountType) {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		category.AccountType = accountType
	}

	oldName := category.Name
	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
		}
		if !strings.EqualFold(newName, oldName) {
			if existing, err := s.categoryRepo.FindCategoryByName(ctx, userID, newName); err == nil && existing.CategoryID != categoryID {
				return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, newName)
			} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to find category: %w", err)
			}
		}
		category.Name = newName
	}

	now := s.now()
	category.LastUpdatedAt = now
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", "category_id", categoryID)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	// A rename cascades so transactions and rule targets never dangle.
	if category.Name != oldName {
		if err := s.txnRepo.ReplaceCategoryRefs(ctx, userID, oldName, category.Name, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to cascade rename to transactions", "old", oldName, "new", category.Name)
			return nil, fmt.Errorf("failed to cascade rename to transactions: %w", err)
		}
		if err := s.ruleRepo.RenameTargetCategory(ctx, userID, oldName, category.Name, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to cascade rename to rules", "old", oldName, "new", category.Name)
			return nil, fmt.Errorf("failed to cascade rename to rules: %w", err)
		}
		s.LogInfo(ctx, "Category renamed", "old", oldName, "new", category.Name)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	category, err := s.ownedCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if strings.EqualFold(category.Name, domain.UncategorizedName) {
		return fmt.Errorf("%w: the fallback category cannot be deleted", apperrors.ErrValidation)
	}

	// Transactions fall back to Uncategorized. Rules keep their target name
	// and will recreate the category on their next match.
	if err := s.txnRepo.ReplaceCategoryRefs(ctx, userID, category.Name, domain.UncategorizedName, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to reassign transactions", "category", category.Name)
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", "category_id", categoryID)
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.LogInfo(ctx, "Category deleted", "category", category.Name)
	return nil
}

func (s *categoryService) ownedCategory(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}
