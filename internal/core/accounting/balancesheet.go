package accounting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// CashLineName is the synthetic current-asset line derived from the net cash
// movement of every transaction in scope.
const CashLineName = "Cash & Equivalents"

// overrideEpsilon is the tolerance below which an override is considered
// equal to the computed value and therefore dropped.
var overrideEpsilon = decimal.RequireFromString("0.01")

// BuildBalanceSheet aggregates txns into a balance sheet as of the end of
// the range they cover.
//
// Each transaction's category is resolved to a bucket by cls. Balance sheet
// buckets accumulate signed line amounts: for asset buckets an EXPENSE
// increases the line and an INCOME decreases it, for liability and equity
// buckets the convention is reversed. Profit-and-loss transactions feed
// retained earnings instead of a line.
//
// The synthetic cash line is net income minus net expense over ALL
// transactions regardless of bucket, and always leads current assets.
//
// Overrides are keyed by line name, case-insensitive, and replace a computed
// line's amount while retaining the computed value. An override within a
// cent of the computed value is ignored. Adjustments are appended after
// overrides and are never overridable.
//
// TotalAssets and TotalLiabilitiesAndEquity are reported as computed; their
// equality is not enforced.
func BuildBalanceSheet(
	txns []domain.Transaction,
	reg Registry,
	adjustments []domain.BalanceSheetAdjustment,
	overrides map[string]decimal.Decimal,
	cls *Classifier,
) domain.BalanceSheetReport {
	sections := map[Bucket]*sectionBuilder{
		BucketCurrentAsset:      newSectionBuilder(),
		BucketFixedAsset:        newSectionBuilder(),
		BucketCurrentLiability:  newSectionBuilder(),
		BucketLongTermLiability: newSectionBuilder(),
		BucketEquity:            newSectionBuilder(),
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	opIncome := decimal.Zero
	opExpense := decimal.Zero

	for _, txn := range txns {
		switch txn.Type {
		case domain.Income:
			totalIncome = totalIncome.Add(txn.Amount)
		case domain.Expense:
			totalExpense = totalExpense.Add(txn.Amount)
		default:
			continue
		}

		name := txn.Category
		if strings.TrimSpace(name) == "" {
			name = domain.UncategorizedName
		}
		bucket := cls.Classify(name, reg)

		if bucket == BucketProfitAndLoss {
			if txn.Type == domain.Income {
				opIncome = opIncome.Add(txn.Amount)
			} else {
				opExpense = opExpense.Add(txn.Amount)
			}
			continue
		}

		impact := txn.Amount
		switch bucket {
		case BucketCurrentAsset, BucketFixedAsset:
			// Buying an asset is an expense; selling one is income.
			if txn.Type == domain.Income {
				impact = impact.Neg()
			}
		case BucketCurrentLiability, BucketLongTermLiability, BucketEquity:
			// Drawing down a loan or contributing capital arrives as income.
			if txn.Type == domain.Expense {
				impact = impact.Neg()
			}
		}
		sections[bucket].add(name, impact)
	}

	normOverrides := make(map[string]decimal.Decimal, len(overrides))
	for name, amount := range overrides {
		normOverrides[strings.ToLower(strings.TrimSpace(name))] = amount
	}

	cash := domain.StatementLine{
		Name:     CashLineName,
		Amount:   totalIncome.Sub(totalExpense),
		Computed: totalIncome.Sub(totalExpense),
	}
	currentAssets := append([]domain.StatementLine{cash}, sections[BucketCurrentAsset].lines()...)

	report := domain.BalanceSheetReport{
		CurrentAssets:       applyOverrides(currentAssets, normOverrides),
		FixedAssets:         applyOverrides(sections[BucketFixedAsset].lines(), normOverrides),
		CurrentLiabilities:  applyOverrides(sections[BucketCurrentLiability].lines(), normOverrides),
		LongTermLiabilities: applyOverrides(sections[BucketLongTermLiability].lines(), normOverrides),
		EquityLines:         applyOverrides(sections[BucketEquity].lines(), normOverrides),
	}

	for _, adj := range adjustments {
		line := domain.StatementLine{
			Name:     adj.Name,
			Amount:   adj.Amount,
			Computed: adj.Amount,
		}
		switch adj.Type {
		case domain.AdjustmentAsset:
			report.CurrentAssets = append(report.CurrentAssets, line)
		case domain.AdjustmentLiability:
			report.LongTermLiabilities = append(report.LongTermLiabilities, line)
		}
	}

	report.TotalCurrentAssets = sumLines(report.CurrentAssets)
	report.TotalFixedAssets = sumLines(report.FixedAssets)
	report.TotalAssets = report.TotalCurrentAssets.Add(report.TotalFixedAssets)
	report.TotalCurrentLiabilities = sumLines(report.CurrentLiabilities)
	report.TotalLongTermLiabilities = sumLines(report.LongTermLiabilities)
	report.TotalLiabilities = report.TotalCurrentLiabilities.Add(report.TotalLongTermLiabilities)
	report.RetainedEarnings = opIncome.Sub(opExpense)
	report.TotalEquity = sumLines(report.EquityLines).Add(report.RetainedEarnings)
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	return report
}

// sectionBuilder accumulates signed amounts per line name while preserving
// first-seen order.
type sectionBuilder struct {
	order []string
	names map[string]string
	sums  map[string]decimal.Decimal
}

func newSectionBuilder() *sectionBuilder {
	return &sectionBuilder{
		names: make(map[string]string),
		sums:  make(map[string]decimal.Decimal),
	}
}

func (b *sectionBuilder) add(name string, amount decimal.Decimal) {
	key := strings.ToLower(name)
	if _, ok := b.sums[key]; !ok {
		b.order = append(b.order, key)
		b.names[key] = name
		b.sums[key] = decimal.Zero
	}
	b.sums[key] = b.sums[key].Add(amount)
}

func (b *sectionBuilder) lines() []domain.StatementLine {
	out := make([]domain.StatementLine, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, domain.StatementLine{
			Name:     b.names[key],
			Amount:   b.sums[key],
			Computed: b.sums[key],
		})
	}
	return out
}

func applyOverrides(lines []domain.StatementLine, overrides map[string]decimal.Decimal) []domain.StatementLine {
	for i := range lines {
		amount, ok := overrides[strings.ToLower(lines[i].Name)]
		if !ok {
			continue
		}
		if amount.Sub(lines[i].Computed).Abs().LessThan(overrideEpsilon) {
			continue
		}
		lines[i].Amount = amount
		lines[i].Overridden = true
	}
	return lines
}

func sumLines(lines []domain.StatementLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
