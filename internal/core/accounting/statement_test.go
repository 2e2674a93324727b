package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

func categorized(id, desc string, txnType domain.TransactionType, amount, category string) domain.Transaction {
	t := txn(id, desc, txnType, amount)
	t.Category = category
	return t
}

func TestBuildProfitAndLoss(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	txns := []domain.Transaction{
		categorized("t1", "invoice 12", domain.Income, "1000.00", "Sales"),
		categorized("t2", "office rent", domain.Expense, "400.00", "Rent"),
		categorized("t3", "invoice 13", domain.Income, "500.00", "Sales"),
		categorized("t4", "electricity", domain.Expense, "600.00", "Utilities"),
		categorized("t5", "unknown", domain.Expense, "50.00", ""),
	}

	report := accounting.BuildProfitAndLoss(txns, nil, cls)

	require.Len(t, report.Income, 1)
	assert.Equal(t, "Sales", report.Income[0].Category)
	assert.True(t, report.Income[0].Amount.Equal(decimal.RequireFromString("1500.00")))

	require.Len(t, report.Expenses, 3)
	assert.Equal(t, "Utilities", report.Expenses[0].Category, "expenses sorted descending by amount")
	assert.Equal(t, "Rent", report.Expenses[1].Category)
	assert.Equal(t, domain.UncategorizedName, report.Expenses[2].Category)

	assert.True(t, report.TotalIncome.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, report.TotalExpense.Equal(decimal.RequireFromString("1050.00")))
	assert.True(t, report.NetProfit.Equal(decimal.RequireFromString("450.00")))
}

func TestBuildProfitAndLossEmptyInput(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	report := accounting.BuildProfitAndLoss(nil, nil, cls)
	assert.Empty(t, report.Income)
	assert.Empty(t, report.Expenses)
	assert.True(t, report.NetProfit.IsZero())
}

func TestBuildProfitAndLossMergesCategoryCase(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	txns := []domain.Transaction{
		categorized("t1", "a", domain.Expense, "10.00", "Rent"),
		categorized("t2", "b", domain.Expense, "15.00", "RENT"),
	}
	report := accounting.BuildProfitAndLoss(txns, nil, cls)
	require.Len(t, report.Expenses, 1)
	assert.True(t, report.Expenses[0].Amount.Equal(decimal.RequireFromString("25.00")))
}

func TestBuildProfitAndLossSkipsBalanceSheetActivity(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	txns := []domain.Transaction{
		categorized("t1", "invoice", domain.Income, "100.00", "Sales"),
		categorized("t2", "buy laptop", domain.Expense, "2000.00", "Computer Equipment"),
		categorized("t3", "bank loan received", domain.Income, "3000.00", "Loans"),
		categorized("t4", "owner draw", domain.Expense, "700.00", "Withdrawal"),
	}

	report := accounting.BuildProfitAndLoss(txns, nil, cls)

	require.Len(t, report.Income, 1)
	assert.Equal(t, "Sales", report.Income[0].Category)
	assert.Empty(t, report.Expenses)
	assert.True(t, report.TotalIncome.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, report.TotalExpense.IsZero())
	assert.True(t, report.NetProfit.Equal(decimal.RequireFromString("100.00")))

	// Net profit agrees with retained earnings on the same data.
	bs := accounting.BuildBalanceSheet(txns, nil, nil, nil, cls)
	assert.True(t, bs.RetainedEarnings.Equal(report.NetProfit))
}

func TestBuildProfitAndLossHonorsDeclaredAccountType(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	reg := accounting.NewRegistry([]domain.Category{
		// Tier-3 keywords would call this a fixed asset; the user says expense.
		{CategoryID: "c1", UserID: "u1", Name: "Equipment", AccountType: domain.AccountTypeExpense},
	})
	txns := []domain.Transaction{
		categorized("t1", "tool rental", domain.Expense, "300.00", "Equipment"),
	}

	report := accounting.BuildProfitAndLoss(txns, reg, cls)

	require.Len(t, report.Expenses, 1)
	assert.True(t, report.TotalExpense.Equal(decimal.RequireFromString("300.00")))

	withoutReg := accounting.BuildProfitAndLoss(txns, nil, cls)
	assert.Empty(t, withoutReg.Expenses)
}

func TestBuildBalanceSheetSignsAndCash(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())

	txns := []domain.Transaction{
		categorized("t1", "invoice", domain.Income, "5000.00", "Sales"),
		categorized("t2", "rent", domain.Expense, "1000.00", "Rent"),
		categorized("t3", "buy laptop", domain.Expense, "2000.00", "Computer Equipment"),
		categorized("t4", "bank loan received", domain.Income, "3000.00", "Loans"),
		categorized("t5", "loan repayment", domain.Expense, "500.00", "Loans"),
		categorized("t6", "owner draw", domain.Expense, "700.00", "Withdrawal"),
	}

	report := accounting.BuildBalanceSheet(txns, nil, nil, nil, cls)

	// Cash = 8000 income - 4200 expense.
	require.NotEmpty(t, report.CurrentAssets)
	cash := report.CurrentAssets[0]
	assert.Equal(t, accounting.CashLineName, cash.Name)
	assert.True(t, cash.Amount.Equal(decimal.RequireFromString("3800.00")))

	require.Len(t, report.FixedAssets, 1)
	assert.True(t, report.FixedAssets[0].Amount.Equal(decimal.RequireFromString("2000.00")))

	require.Len(t, report.LongTermLiabilities, 1)
	assert.True(t, report.LongTermLiabilities[0].Amount.Equal(decimal.RequireFromString("2500.00")))

	require.Len(t, report.EquityLines, 1)
	assert.True(t, report.EquityLines[0].Amount.Equal(decimal.RequireFromString("-700.00")))

	// Only Sales and Rent are P&L items.
	assert.True(t, report.RetainedEarnings.Equal(decimal.RequireFromString("4000.00")))

	assert.True(t, report.TotalAssets.Equal(decimal.RequireFromString("5800.00")))
	assert.True(t, report.TotalLiabilitiesAndEquity.Equal(decimal.RequireFromString("5800.00")))
	assert.True(t, report.Balanced())
}

func TestBuildBalanceSheetOverrides(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	txns := []domain.Transaction{
		categorized("t1", "stock purchase", domain.Expense, "1000.00", "Inventory"),
	}
	overrides := map[string]decimal.Decimal{
		"inventory":            decimal.RequireFromString("850.00"),
		accounting.CashLineName: decimal.RequireFromString("0.00"),
	}

	report := accounting.BuildBalanceSheet(txns, nil, nil, overrides, cls)

	require.Len(t, report.CurrentAssets, 2)
	cash := report.CurrentAssets[0]
	assert.True(t, cash.Overridden)
	assert.True(t, cash.Amount.IsZero())
	assert.True(t, cash.Computed.Equal(decimal.RequireFromString("-1000.00")))

	inv := report.CurrentAssets[1]
	assert.True(t, inv.Overridden)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("850.00")))
	assert.True(t, inv.Computed.Equal(decimal.RequireFromString("1000.00")))

	assert.True(t, report.TotalCurrentAssets.Equal(decimal.RequireFromString("850.00")))
}

func TestBuildBalanceSheetOverrideWithinEpsilonIgnored(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	txns := []domain.Transaction{
		categorized("t1", "stock", domain.Expense, "1000.00", "Inventory"),
	}
	overrides := map[string]decimal.Decimal{
		"Inventory": decimal.RequireFromString("1000.005"),
	}

	report := accounting.BuildBalanceSheet(txns, nil, nil, overrides, cls)
	require.Len(t, report.CurrentAssets, 2)
	assert.False(t, report.CurrentAssets[1].Overridden)
	assert.True(t, report.CurrentAssets[1].Amount.Equal(decimal.RequireFromString("1000.00")))
}

func TestBuildBalanceSheetAdjustments(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	adjustments := []domain.BalanceSheetAdjustment{
		{AdjustmentID: "a1", Name: "Security Deposit", Amount: decimal.RequireFromString("2000.00"), Type: domain.AdjustmentAsset},
		{AdjustmentID: "a2", Name: "Director Loan", Amount: decimal.RequireFromString("5000.00"), Type: domain.AdjustmentLiability},
	}
	// An override naming an adjustment has no effect.
	overrides := map[string]decimal.Decimal{
		"security deposit": decimal.RequireFromString("1.00"),
	}

	report := accounting.BuildBalanceSheet(nil, nil, adjustments, overrides, cls)

	require.Len(t, report.CurrentAssets, 2, "cash line plus asset adjustment")
	dep := report.CurrentAssets[1]
	assert.Equal(t, "Security Deposit", dep.Name)
	assert.False(t, dep.Overridden)
	assert.True(t, dep.Amount.Equal(decimal.RequireFromString("2000.00")))

	require.Len(t, report.LongTermLiabilities, 1)
	assert.Equal(t, "Director Loan", report.LongTermLiabilities[0].Name)

	assert.True(t, report.TotalAssets.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, report.TotalLiabilities.Equal(decimal.RequireFromString("5000.00")))
	assert.False(t, report.Balanced(), "imbalance is reported, not corrected")
}

func TestBuildBalanceSheetRegistryOverridesNameTable(t *testing.T) {
	cls := accounting.NewClassifier(accounting.DefaultConfig())
	reg := accounting.NewRegistry([]domain.Category{
		{CategoryID: "c1", UserID: "u1", Name: "Sales", AccountType: domain.AccountTypeCurrentAsset},
	})
	txns := []domain.Transaction{
		categorized("t1", "x", domain.Income, "100.00", "Sales"),
	}

	report := accounting.BuildBalanceSheet(txns, reg, nil, nil, cls)

	require.Len(t, report.CurrentAssets, 2)
	assert.True(t, report.CurrentAssets[1].Amount.Equal(decimal.RequireFromString("-100.00")))
	assert.True(t, report.RetainedEarnings.IsZero())
}
