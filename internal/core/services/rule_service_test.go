package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	"github.com/finsight-hq/finsight_backend/internal/core/services"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/dto"
)

type RuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo     *MockRuleRepository
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.RuleSvcFacade
}

func (suite *RuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockRuleRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewRuleService(suite.mockRuleRepo, suite.mockTxnRepo, suite.mockCategoryRepo)
}

func (suite *RuleServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	userID := "user-1"
	req := dto.CreateRuleRequest{Keyword: "netflix", TargetCategory: "Subscriptions", TargetType: "EXPENSE"}

	suite.mockCategoryRepo.On("FindCategoryByName", ctx, userID, "Subscriptions").
		Return(&domain.Category{CategoryID: "c1", UserID: userID, Name: "Subscriptions"}, nil).Once()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.CategorizationRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rule)
	suite.NotEmpty(rule.RuleID)
	suite.Equal("netflix", rule.Keyword)
	suite.Equal(domain.Expense, rule.TargetType)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestCreateRule_CreatesMissingTargetCategory() {
	ctx := context.Background()
	userID := "user-1"
	req := dto.CreateRuleRequest{Keyword: "uber", TargetCategory: "Travel"}

	suite.mockCategoryRepo.On("FindCategoryByName", ctx, userID, "Travel").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()
	suite.mockRuleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.CategorizationRule")).Return(nil).Once()

	_, err := suite.service.CreateRule(ctx, userID, req)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestApplyRules_PersistsOnlyChanges() {
	ctx := context.Background()
	userID := "user-1"
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	rules := []domain.CategorizationRule{
		{RuleID: "r1", UserID: userID, Keyword: "rent", TargetCategory: "Rent"},
	}
	txns := []domain.Transaction{
		{TransactionID: "t1", UserID: userID, Date: date, Description: "monthly rent", Amount: decimal.NewFromInt(1200), Type: domain.Expense},
		{TransactionID: "t2", UserID: userID, Date: date, Description: "monthly rent", Amount: decimal.NewFromInt(1200), Type: domain.Expense, Category: "Rent"},
		{TransactionID: "t3", UserID: userID, Date: date, Description: "groceries", Amount: decimal.NewFromInt(80), Type: domain.Expense},
	}

	suite.mockRuleRepo.On("ListRules", ctx, userID).Return(rules, nil).Once()
	suite.mockTxnRepo.On("ListAllTransactions", ctx, userID, (*time.Time)(nil), (*time.Time)(nil)).Return(txns, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionCategories", ctx, userID,
		map[string]string{"t1": "Rent"}, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.ApplyRules(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(1, updated)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestApplyRules_NoRulesIsNoop() {
	ctx := context.Background()
	suite.mockRuleRepo.On("ListRules", ctx, "user-1").Return([]domain.CategorizationRule{}, nil).Once()

	updated, err := suite.service.ApplyRules(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Zero(updated)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListAllTransactions")
}

func (suite *RuleServiceTestSuite) TestDeleteRule_NotOwned() {
	ctx := context.Background()
	suite.mockRuleRepo.On("FindRuleByID", ctx, "r1").
		Return(&domain.CategorizationRule{RuleID: "r1", UserID: "someone-else"}, nil).Once()

	err := suite.service.DeleteRule(ctx, "user-1", "r1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "DeleteRule")
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}
