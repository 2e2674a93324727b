package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/dto"
	"github.com/finsight-hq/finsight_backend/internal/handlers"
	"github.com/finsight-hq/finsight_backend/internal/middleware"
)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) GetProfitAndLoss(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.PLReport, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PLReport), args.Error(1)
}

func (m *MockStatementService) GetBalanceSheet(ctx context.Context, userID string, from *time.Time, to *time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockStatementService) NarrateProfitAndLoss(ctx context.Context, userID string, from *time.Time, to *time.Time) (string, error) {
	args := m.Called(ctx, userID, from, to)
	return args.String(0), args.Error(1)
}

func (m *MockStatementService) SetOverride(ctx context.Context, userID string, lineName string, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, lineName, amount)
	return args.Error(0)
}

func (m *MockStatementService) ClearOverride(ctx context.Context, userID string, lineName string) error {
	args := m.Called(ctx, userID, lineName)
	return args.Error(0)
}

func (m *MockStatementService) ListOverrides(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockStatementService) CreateAdjustment(ctx context.Context, userID string, req dto.CreateAdjustmentRequest) (*domain.BalanceSheetAdjustment, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetAdjustment), args.Error(1)
}

func (m *MockStatementService) UpdateAdjustment(ctx context.Context, userID string, adjustmentID string, req dto.UpdateAdjustmentRequest) (*domain.BalanceSheetAdjustment, error) {
	args := m.Called(ctx, userID, adjustmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetAdjustment), args.Error(1)
}

func (m *MockStatementService) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceSheetAdjustment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSheetAdjustment), args.Error(1)
}

func (m *MockStatementService) DeleteAdjustment(ctx context.Context, userID string, adjustmentID string) error {
	args := m.Called(ctx, userID, adjustmentID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

// --- Test Suite ---
type StatementHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockStatementService *MockStatementService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *StatementHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finsight-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *StatementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockStatementService = new(MockStatementService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterStatementRoutes(v1, suite.mockStatementService)
}

func (suite *StatementHandlerTestSuite) TestGetBalanceSheetSuccess() {
	userID := uuid.NewString()

	report := &domain.BalanceSheetReport{
		CurrentAssets: []domain.StatementLine{
			{Name: "Cash & Equivalents", Amount: decimal.RequireFromString("500.005"), Computed: decimal.RequireFromString("500.005")},
		},
		TotalAssets:               decimal.RequireFromString("500.005"),
		TotalLiabilitiesAndEquity: decimal.RequireFromString("500.005"),
	}
	suite.mockStatementService.On("GetBalanceSheet", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(report, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/balance-sheet", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got dto.BalanceSheetResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got.CurrentAssets, 1)
	suite.Equal("Cash & Equivalents", got.CurrentAssets[0].Name)
	suite.True(got.CurrentAssets[0].Amount.Equal(decimal.RequireFromString("500.01")), "line amounts rounded to 2dp")
	suite.True(got.TotalAssets.Equal(decimal.RequireFromString("500.01")))
	suite.True(got.Balanced)

	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestGetBalanceSheetWithDateRange() {
	userID := uuid.NewString()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.mockStatementService.On("GetBalanceSheet", mock.Anything, userID, &from, &to).
		Return(&domain.BalanceSheetReport{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/balance-sheet?from=2024-01-01&to=2024-12-31", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestGetProfitAndLossSuccess() {
	userID := uuid.NewString()

	report := &domain.PLReport{
		Income:       []domain.CategoryAmount{{Category: "Sales", Amount: decimal.RequireFromString("1000.004")}},
		TotalIncome:  decimal.RequireFromString("1000.004"),
		TotalExpense: decimal.Zero,
		NetProfit:    decimal.RequireFromString("1000.004"),
	}
	suite.mockStatementService.On("GetProfitAndLoss", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(report, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/profit-and-loss", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got dto.PLReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got.Income, 1)
	suite.Equal("Sales", got.Income[0].Category)
	suite.True(got.Income[0].Amount.Equal(decimal.RequireFromString("1000.00")), "amounts rounded to 2dp")
	suite.True(got.NetProfit.Equal(decimal.RequireFromString("1000.00")))

	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestNarrateNotConfigured() {
	userID := uuid.NewString()

	suite.mockStatementService.On("NarrateProfitAndLoss", mock.Anything, userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return("", fmt.Errorf("%w: narration is not configured", apperrors.ErrValidation)).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/profit-and-loss/narrative", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestSetOverride() {
	userID := uuid.NewString()

	suite.mockStatementService.On("SetOverride", mock.Anything, userID, "Inventory", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("450.00"))
	})).Return(nil).Once()

	body, _ := json.Marshal(dto.SetOverrideRequest{
		LineName: "Inventory",
		Amount:   decimal.RequireFromString("450.00"),
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/statements/overrides", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestClearOverrideNotFound() {
	userID := uuid.NewString()

	suite.mockStatementService.On("ClearOverride", mock.Anything, userID, "inventory").
		Return(apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/statements/overrides/inventory", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestCreateAdjustment() {
	userID := uuid.NewString()

	adjustment := &domain.BalanceSheetAdjustment{
		AdjustmentID: uuid.NewString(),
		UserID:       userID,
		Name:         "Equipment loan",
		Amount:       decimal.RequireFromString("2500.00"),
		Type:         domain.AdjustmentLiability,
	}
	suite.mockStatementService.On("CreateAdjustment", mock.Anything, userID, mock.MatchedBy(func(req dto.CreateAdjustmentRequest) bool {
		return req.Name == "Equipment loan" && req.Type == "LIABILITY"
	})).Return(adjustment, nil).Once()

	body, _ := json.Marshal(dto.CreateAdjustmentRequest{
		Name:   "Equipment loan",
		Amount: decimal.RequireFromString("2500.00"),
		Type:   "LIABILITY",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/adjustments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var got dto.AdjustmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("Equipment loan", got.Name)
	suite.Equal("LIABILITY", got.Type)

	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestUnauthenticatedRequestRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/balance-sheet", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockStatementService.AssertNotCalled(suite.T(), "GetBalanceSheet")
}

func TestStatementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(StatementHandlerTestSuite))
}
