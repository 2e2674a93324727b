package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// StatementRangeParams bounds a statement build. Nil bounds are unbounded.
type StatementRangeParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// CreateAdjustmentRequest defines the payload for a manual balance sheet line.
type CreateAdjustmentRequest struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Type   string          `json:"type" binding:"required,oneof=ASSET LIABILITY"`
}

// UpdateAdjustmentRequest defines the payload for updating an adjustment.
type UpdateAdjustmentRequest struct {
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
	Type   *string          `json:"type" binding:"omitempty,oneof=ASSET LIABILITY"`
}

// AdjustmentResponse is the API shape of a balance sheet adjustment.
type AdjustmentResponse struct {
	AdjustmentID  string          `json:"adjustmentID"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// SetOverrideRequest pins a statement line to a manual amount.
type SetOverrideRequest struct {
	LineName string          `json:"lineName" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// OverrideResponse is one stored statement line override.
type OverrideResponse struct {
	LineName string          `json:"lineName"`
	Amount   decimal.Decimal `json:"amount"`
}

// StatementNarrativeResponse wraps a generated plain-language summary.
type StatementNarrativeResponse struct {
	Narrative string `json:"narrative"`
}

// CategoryAmountResponse is one profit and loss line.
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// PLReportResponse is the API shape of a profit and loss statement.
// Amounts are rounded to 2 digits for display; the engine keeps full
// precision internally.
type PLReportResponse struct {
	Income       []CategoryAmountResponse `json:"income"`
	Expenses     []CategoryAmountResponse `json:"expenses"`
	TotalIncome  decimal.Decimal          `json:"totalIncome"`
	TotalExpense decimal.Decimal          `json:"totalExpense"`
	NetProfit    decimal.Decimal          `json:"netProfit"`
}

// StatementLineResponse is one balance sheet line.
type StatementLineResponse struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Computed   decimal.Decimal `json:"computed"`
	Overridden bool            `json:"overridden"`
}

// BalanceSheetResponse is the API shape of a balance sheet.
type BalanceSheetResponse struct {
	CurrentAssets       []StatementLineResponse `json:"currentAssets"`
	FixedAssets         []StatementLineResponse `json:"fixedAssets"`
	CurrentLiabilities  []StatementLineResponse `json:"currentLiabilities"`
	LongTermLiabilities []StatementLineResponse `json:"longTermLiabilities"`
	EquityLines         []StatementLineResponse `json:"equityLines"`

	TotalCurrentAssets        decimal.Decimal `json:"totalCurrentAssets"`
	TotalFixedAssets          decimal.Decimal `json:"totalFixedAssets"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalCurrentLiabilities   decimal.Decimal `json:"totalCurrentLiabilities"`
	TotalLongTermLiabilities  decimal.Decimal `json:"totalLongTermLiabilities"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	RetainedEarnings          decimal.Decimal `json:"retainedEarnings"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	Balanced                  bool            `json:"balanced"`
}

// ToPLReportResponse maps a profit and loss report to its API shape.
func ToPLReportResponse(r domain.PLReport) PLReportResponse {
	return PLReportResponse{
		Income:       toCategoryAmountResponses(r.Income),
		Expenses:     toCategoryAmountResponses(r.Expenses),
		TotalIncome:  r.TotalIncome.Round(2),
		TotalExpense: r.TotalExpense.Round(2),
		NetProfit:    r.NetProfit.Round(2),
	}
}

// ToBalanceSheetResponse maps a balance sheet report to its API shape.
func ToBalanceSheetResponse(r domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		CurrentAssets:       toStatementLineResponses(r.CurrentAssets),
		FixedAssets:         toStatementLineResponses(r.FixedAssets),
		CurrentLiabilities:  toStatementLineResponses(r.CurrentLiabilities),
		LongTermLiabilities: toStatementLineResponses(r.LongTermLiabilities),
		EquityLines:         toStatementLineResponses(r.EquityLines),

		TotalCurrentAssets:        r.TotalCurrentAssets.Round(2),
		TotalFixedAssets:          r.TotalFixedAssets.Round(2),
		TotalAssets:               r.TotalAssets.Round(2),
		TotalCurrentLiabilities:   r.TotalCurrentLiabilities.Round(2),
		TotalLongTermLiabilities:  r.TotalLongTermLiabilities.Round(2),
		TotalLiabilities:          r.TotalLiabilities.Round(2),
		RetainedEarnings:          r.RetainedEarnings.Round(2),
		TotalEquity:               r.TotalEquity.Round(2),
		TotalLiabilitiesAndEquity: r.TotalLiabilitiesAndEquity.Round(2),
		Balanced:                  r.Balanced(),
	}
}

func toCategoryAmountResponses(lines []domain.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, CategoryAmountResponse{Category: l.Category, Amount: l.Amount.Round(2)})
	}
	return out
}

func toStatementLineResponses(lines []domain.StatementLine) []StatementLineResponse {
	out := make([]StatementLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, StatementLineResponse{
			Name:       l.Name,
			Amount:     l.Amount.Round(2),
			Computed:   l.Computed.Round(2),
			Overridden: l.Overridden,
		})
	}
	return out
}

// ToAdjustmentResponse maps a domain adjustment to its API shape.
func ToAdjustmentResponse(a domain.BalanceSheetAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:  a.AdjustmentID,
		Name:          a.Name,
		Amount:        a.Amount.Round(2),
		Type:          string(a.Type),
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}
