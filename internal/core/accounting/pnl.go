package accounting

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// BuildProfitAndLoss aggregates txns into a profit and loss statement.
// Only transactions whose category classifies to the profit-and-loss bucket
// are counted; asset, liability and equity activity belongs to the balance
// sheet and is skipped here so both statements partition the same data.
// Uncategorized transactions are grouped under the fallback category name.
// Income lines keep first-seen order; expense lines are sorted by amount
// descending, ties broken by first-seen order.
func BuildProfitAndLoss(txns []domain.Transaction, reg Registry, cls *Classifier) domain.PLReport {
	report := domain.PLReport{
		Income:       []domain.CategoryAmount{},
		Expenses:     []domain.CategoryAmount{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	incomeIdx := make(map[string]int)
	expenseIdx := make(map[string]int)

	for _, txn := range txns {
		name := txn.Category
		if strings.TrimSpace(name) == "" {
			name = domain.UncategorizedName
		}
		if cls.Classify(name, reg) != BucketProfitAndLoss {
			continue
		}
		key := strings.ToLower(name)

		switch txn.Type {
		case domain.Income:
			report.TotalIncome = report.TotalIncome.Add(txn.Amount)
			if i, ok := incomeIdx[key]; ok {
				report.Income[i].Amount = report.Income[i].Amount.Add(txn.Amount)
			} else {
				incomeIdx[key] = len(report.Income)
				report.Income = append(report.Income, domain.CategoryAmount{Category: name, Amount: txn.Amount})
			}
		case domain.Expense:
			report.TotalExpense = report.TotalExpense.Add(txn.Amount)
			if i, ok := expenseIdx[key]; ok {
				report.Expenses[i].Amount = report.Expenses[i].Amount.Add(txn.Amount)
			} else {
				expenseIdx[key] = len(report.Expenses)
				report.Expenses = append(report.Expenses, domain.CategoryAmount{Category: name, Amount: txn.Amount})
			}
		}
	}

	sort.SliceStable(report.Expenses, func(i, j int) bool {
		return report.Expenses[i].Amount.GreaterThan(report.Expenses[j].Amount)
	})

	report.NetProfit = report.TotalIncome.Sub(report.TotalExpense)
	return report
}
