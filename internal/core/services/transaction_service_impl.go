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
	"github.com/finsight-hq/finsight_backend/internal/utils/pagination"
)

const defaultListLimit = 50

// ingestNamespace seeds the deterministic IDs assigned to extracted
// transactions, so re-ingesting the same document inserts nothing new.
var ingestNamespace = uuid.MustParse("e5a9f7d2-6c1b-4f3e-9d8a-2b7c4e0f1a63")

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	ruleRepo     portsrepo.RuleRepositoryFacade
	entityRepo   portsrepo.EntityRepositoryFacade
	extractor    portssvc.DocumentExtractor
	simOpts      accounting.SimilarityOptions
	now          func() time.Time
}

// TransactionServiceOption configures the transaction service.
type TransactionServiceOption func(*transactionService)

// WithDocumentExtractor wires the collaborator used by IngestDocument.
func WithDocumentExtractor(extractor portssvc.DocumentExtractor) TransactionServiceOption {
	return func(s *transactionService) {
		s.extractor = extractor
	}
}

// WithSimilarityOptions overrides the similarity matcher tuning.
func WithSimilarityOptions(opts accounting.SimilarityOptions) TransactionServiceOption {
	return func(s *transactionService) {
		s.simOpts = opts
	}
}

// WithTransactionClock overrides the time source, for tests.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	ruleRepo portsrepo.RuleRepositoryFacade,
	entityRepo portsrepo.EntityRepositoryFacade,
	opts ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		ruleRepo:     ruleRepo,
		entityRepo:   entityRepo,
		simOpts:      accounting.DefaultSimilarityOptions(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.EntityID != "" {
		if _, err := s.ownedEntity(ctx, userID, req.EntityID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		UserID:              userID,
		EntityID:            req.EntityID,
		Date:                req.Date,
		Description:         req.Description,
		OriginalDescription: req.Description,
		Amount:              req.Amount,
		Type:                domain.TransactionType(req.Type),
		Category:            req.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Manual entries without a category still get a shot at the ruleset.
	if txn.Category == "" {
		rules, err := s.ruleRepo.ListRules(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list rules: %w", err)
		}
		if r := accounting.MatchRule(txn, rules); r != nil {
			txn.Category = r.TargetCategory
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction created", "transaction_id", txn.TransactionID)
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.ownedTransaction(ctx, userID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	offset, err := pagination.DecodeOffsetToken(params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	filter := portsrepo.TransactionFilter{
		From:     params.From,
		To:       params.To,
		Category: params.Category,
		Type:     domain.TransactionType(params.Type),
	}

	// Fetch one extra row to learn whether another page exists.
	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter, limit+1, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		token := pagination.EncodeOffsetToken(offset + limit)
		nextToken = &token
	}
	return txns, nextToken, nil
}

func (s *transactionService) FindSimilarTransactions(ctx context.Context, userID string, transactionID string) ([]accounting.SimilarTransaction, error) {
	base, err := s.ownedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.txnRepo.ListAllTransactions(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return accounting.FindSimilar(*base, candidates, s.simOpts), nil
}

func (s *transactionService) CategorizeTransaction(ctx context.Context, userID string, transactionID string, req dto.CategorizeTransactionRequest) (int, error) {
	txn, err := s.ownedTransaction(ctx, userID, transactionID)
	if err != nil {
		return 0, err
	}

	name, err := s.ensureCategory(ctx, userID, req.Category)
	if err != nil {
		return 0, err
	}

	updates := map[string]string{txn.TransactionID: name}
	if req.ApplyToSimilar {
		candidates, err := s.txnRepo.ListAllTransactions(ctx, userID, nil, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to list transactions: %w", err)
		}
		for _, match := range accounting.FindSimilar(*txn, candidates, s.simOpts) {
			if isUncategorized(match.Transaction.Category) {
				updates[match.Transaction.TransactionID] = name
			}
		}
	}

	if err := s.txnRepo.UpdateTransactionCategories(ctx, userID, updates, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to update transaction categories")
		return 0, fmt.Errorf("failed to update transaction categories: %w", err)
	}
	s.LogInfo(ctx, "Transactions categorized", "category", name, "count", len(updates))
	return len(updates), nil
}

func (s *transactionService) IngestDocument(ctx context.Context, userID string, filename string, content []byte) ([]domain.Transaction, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: document extraction is not configured", apperrors.ErrValidation)
	}

	proposed, err := s.extractor.ExtractTransactions(ctx, filename, content)
	if err != nil {
		s.LogError(ctx, err, "Document extraction failed", "filename", filename)
		return nil, fmt.Errorf("failed to extract transactions: %w", err)
	}

	rules, err := s.ruleRepo.ListRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	now := s.now()
	txns := make([]domain.Transaction, 0, len(proposed))
	for i, p := range proposed {
		txn := domain.Transaction{
			TransactionID:       ingestID(userID, filename, i, p),
			UserID:              userID,
			Date:                p.Date,
			Description:         p.Description,
			OriginalDescription: p.Description,
			Amount:              p.Amount,
			Type:                p.Type,
			Category:            p.Category,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := txn.Validate(); err != nil {
			s.LogInfo(ctx, "Skipping invalid extracted transaction", "filename", filename, "reason", err.Error())
			continue
		}
		txns = append(txns, txn)
	}

	txns = accounting.ApplyRules(txns, rules)

	if err := s.txnRepo.UpsertTransactions(ctx, txns); err != nil {
		s.LogError(ctx, err, "Failed to persist extracted transactions", "filename", filename)
		return nil, fmt.Errorf("failed to persist extracted transactions: %w", err)
	}
	s.LogInfo(ctx, "Document ingested", "filename", filename, "count", len(txns))
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.ownedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		txn.Type = domain.TransactionType(*req.Type)
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.EntityID != nil {
		if *req.EntityID != "" {
			if _, err := s.ownedEntity(ctx, userID, *req.EntityID); err != nil {
				return nil, err
			}
		}
		txn.EntityID = *req.EntityID
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	txn.LastUpdatedAt = s.now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if _, err := s.ownedTransaction(ctx, userID, transactionID); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", "transaction_id", transactionID)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// ownedTransaction fetches a transaction and hides other users' rows behind
// ErrNotFound.
func (s *transactionService) ownedTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *transactionService) ownedEntity(ctx context.Context, userID string, entityID string) (*domain.Entity, error) {
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

// ensureCategory resolves name to an existing category's canonical spelling,
// creating the category on first use.
func (s *transactionService) ensureCategory(ctx context.Context, userID string, name string) (string, error) {
	existing, err := s.categoryRepo.FindCategoryByName(ctx, userID, name)
	if err == nil {
		return existing.Name, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to find category: %w", err)
	}

	now := s.now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       strings.TrimSpace(name),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		// A concurrent create is fine, the name now exists either way.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return category.Name, nil
		}
		return "", fmt.Errorf("failed to save category: %w", err)
	}
	s.LogInfo(ctx, "Category created on first use", "category", category.Name)
	return category.Name, nil
}

func isUncategorized(category string) bool {
	return strings.TrimSpace(category) == "" || strings.EqualFold(category, domain.UncategorizedName)
}

func ingestID(userID string, filename string, index int, p portssvc.ProposedTransaction) string {
	seed := fmt.Sprintf("%s|%s|%d|%s|%s|%s|%s",
		userID, filename, index,
		p.Date.Format("2006-01-02"), p.Description, p.Amount.String(), p.Type)
	return uuid.NewSHA1(ingestNamespace, []byte(seed)).String()
}
