package domain

import "github.com/shopspring/decimal"

// CategoryAmount is a single profit-and-loss line: a category name and the
// summed magnitude of its transactions.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// PLReport is a profit and loss statement. Categories with no matching
// transactions are absent, not zero-valued.
type PLReport struct {
	Income       []CategoryAmount `json:"income"`   // Insertion order
	Expenses     []CategoryAmount `json:"expenses"` // Descending by amount
	TotalIncome  decimal.Decimal  `json:"totalIncome"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	NetProfit    decimal.Decimal  `json:"netProfit"`
}

// StatementLine is a balance sheet line item. Amount is the value used for
// display and totals; Computed retains the engine-derived value so an
// override can be detected and reset without drift.
type StatementLine struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Computed   decimal.Decimal `json:"computed"`
	Overridden bool            `json:"overridden"`
}

// BalanceSheetReport is a balance sheet. TotalAssets and
// TotalLiabilitiesAndEquity are both always present; the engine does not
// enforce their equality. A mismatch is a surfaced data-quality signal, not
// a computation error.
type BalanceSheetReport struct {
	CurrentAssets       []StatementLine `json:"currentAssets"`
	FixedAssets         []StatementLine `json:"fixedAssets"`
	CurrentLiabilities  []StatementLine `json:"currentLiabilities"`
	LongTermLiabilities []StatementLine `json:"longTermLiabilities"`
	EquityLines         []StatementLine `json:"equityLines"`

	TotalCurrentAssets        decimal.Decimal `json:"totalCurrentAssets"`
	TotalFixedAssets          decimal.Decimal `json:"totalFixedAssets"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalCurrentLiabilities   decimal.Decimal `json:"totalCurrentLiabilities"`
	TotalLongTermLiabilities  decimal.Decimal `json:"totalLongTermLiabilities"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	RetainedEarnings          decimal.Decimal `json:"retainedEarnings"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
}

// Balanced reports whether the accounting identity holds to the cent.
func (r BalanceSheetReport) Balanced() bool {
	return r.TotalAssets.Sub(r.TotalLiabilitiesAndEquity).Abs().
		LessThan(decimal.RequireFromString("0.01"))
}
