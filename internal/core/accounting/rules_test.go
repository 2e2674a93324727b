package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

func txn(id, desc string, txnType domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID:       id,
		UserID:              "user-1",
		Date:                time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:         desc,
		OriginalDescription: desc,
		Amount:              decimal.RequireFromString(amount),
		Type:                txnType,
	}
}

func rule(keyword, target string, targetType domain.TransactionType) domain.CategorizationRule {
	return domain.CategorizationRule{
		RuleID:         "rule-" + keyword,
		UserID:         "user-1",
		Keyword:        keyword,
		TargetCategory: target,
		TargetType:     targetType,
	}
}

func TestMatchRuleLongestKeywordWins(t *testing.T) {
	rules := []domain.CategorizationRule{
		rule("amazon", "Shopping", ""),
		rule("amazon web services", "Cloud Hosting", ""),
	}

	got := accounting.MatchRule(txn("t1", "AMAZON WEB SERVICES EMEA", domain.Expense, "12.00"), rules)
	require.NotNil(t, got)
	assert.Equal(t, "Cloud Hosting", got.TargetCategory)

	got = accounting.MatchRule(txn("t2", "Amazon Marketplace", domain.Expense, "30.00"), rules)
	require.NotNil(t, got)
	assert.Equal(t, "Shopping", got.TargetCategory)
}

func TestMatchRuleEqualLengthKeepsInputOrder(t *testing.T) {
	rules := []domain.CategorizationRule{
		rule("coffee", "Meals", ""),
		rule("coffeh", "Typos", ""),
	}

	got := accounting.MatchRule(txn("t1", "coffee and coffeh", domain.Expense, "5.00"), rules)
	require.NotNil(t, got)
	assert.Equal(t, "Meals", got.TargetCategory)
}

func TestMatchRuleTypeGate(t *testing.T) {
	rules := []domain.CategorizationRule{
		rule("stripe", "Sales", domain.Income),
	}

	assert.Nil(t, accounting.MatchRule(txn("t1", "STRIPE PAYOUT", domain.Expense, "99.00"), rules))

	got := accounting.MatchRule(txn("t2", "STRIPE PAYOUT", domain.Income, "99.00"), rules)
	require.NotNil(t, got)
	assert.Equal(t, "Sales", got.TargetCategory)
}

func TestMatchRuleUsesOriginalDescription(t *testing.T) {
	rules := []domain.CategorizationRule{rule("uber", "Travel", "")}

	renamed := txn("t1", "Trip to airport", domain.Expense, "18.50")
	renamed.OriginalDescription = "UBER *TRIP HELP.UBER.COM"

	got := accounting.MatchRule(renamed, rules)
	require.NotNil(t, got)
	assert.Equal(t, "Travel", got.TargetCategory)
}

func TestApplyRulesIsIdempotentAndPure(t *testing.T) {
	rules := []domain.CategorizationRule{rule("rent", "Rent", "")}
	input := []domain.Transaction{
		txn("t1", "MONTHLY RENT PAYMENT", domain.Expense, "1200.00"),
		txn("t2", "Groceries", domain.Expense, "80.00"),
	}
	input[1].Category = "Food"

	once := accounting.ApplyRules(input, rules)
	twice := accounting.ApplyRules(once, rules)

	assert.Equal(t, "Rent", once[0].Category)
	assert.Equal(t, "Food", once[1].Category, "unmatched transactions keep their category")
	assert.Equal(t, once, twice)
	assert.Empty(t, input[0].Category, "input slice is not mutated")
}

func TestApplyRulesEmptyRuleset(t *testing.T) {
	input := []domain.Transaction{txn("t1", "anything", domain.Expense, "1.00")}
	out := accounting.ApplyRules(input, nil)
	assert.Equal(t, input, out)
}
