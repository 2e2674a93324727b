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

func dated(id, desc string, amount string, date time.Time) domain.Transaction {
	t := txn(id, desc, domain.Expense, amount)
	t.Date = date
	return t
}

func TestFindSimilarExcludesBaseAndRanks(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	base := dated("base", "NETFLIX.COM SUBSCRIPTION", "15.99", day(1))

	candidates := []domain.Transaction{
		base,
		dated("c1", "NETFLIX.COM SUBSCRIPTION", "15.99", day(10)),
		dated("c2", "NETFLIX.COM SUBSCRIPTION", "15.99", day(20)),
		dated("c3", "SPOTIFY SUBSCRIPTION", "15.99", day(5)),
		dated("c4", "HARDWARE STORE", "240.00", day(3)),
	}

	got := accounting.FindSimilar(base, candidates, accounting.SimilarityOptions{})

	require.Len(t, got, 3, "base and unrelated candidates are excluded")
	assert.Equal(t, "c2", got[0].Transaction.TransactionID, "ties broken by most recent date")
	assert.Equal(t, "c1", got[1].Transaction.TransactionID)
	assert.Equal(t, "c3", got[2].Transaction.TransactionID)
	assert.Greater(t, got[0].Score, got[2].Score)
}

func TestFindSimilarAmountOnlyMatch(t *testing.T) {
	base := txn("base", "wire transfer ref 9912", domain.Expense, "500.00")
	cand := txn("c1", "misc", domain.Expense, "500.00")

	got := accounting.FindSimilar(base, []domain.Transaction{cand}, accounting.SimilarityOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Score)
}

func TestFindSimilarTokenOverlapBelowMinNeedsAmount(t *testing.T) {
	base := txn("base", "monthly parking garage", domain.Expense, "80.00")
	oneToken := txn("c1", "parking fine", domain.Expense, "240.00")

	got := accounting.FindSimilar(base, []domain.Transaction{oneToken}, accounting.SimilarityOptions{})
	assert.Empty(t, got, "one shared token and a different amount is not similar")

	oneToken.Amount = decimal.RequireFromString("80.00")
	got = accounting.FindSimilar(base, []domain.Transaction{oneToken}, accounting.SimilarityOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Score)
}

func TestFindSimilarTokenizerDropsShortTokens(t *testing.T) {
	base := txn("base", "A B payment to J&J", domain.Expense, "10.00")
	cand := txn("c1", "b a j j refund", domain.Expense, "999.00")

	// Only single-character tokens overlap, so nothing is shared.
	got := accounting.FindSimilar(base, []domain.Transaction{cand}, accounting.SimilarityOptions{})
	assert.Empty(t, got)
}

func TestFindSimilarNonLatinDescriptions(t *testing.T) {
	base := txn("base", "Оплата аренды офис", domain.Expense, "100.00")
	cand := txn("c1", "оплата аренды склад", domain.Expense, "250.00")
	unrelated := txn("c2", "закупка материалов", domain.Expense, "250.00")

	got := accounting.FindSimilar(base, []domain.Transaction{cand, unrelated}, accounting.SimilarityOptions{})

	require.Len(t, got, 1, "Cyrillic tokens must match on text, not just amount")
	assert.Equal(t, "c1", got[0].Transaction.TransactionID)
	assert.Equal(t, 4, got[0].Score, "two shared tokens, amounts differ")
}

func TestFindSimilarMaxResults(t *testing.T) {
	base := txn("base", "recurring vendor payment", domain.Expense, "10.00")
	var candidates []domain.Transaction
	for i := 0; i < 40; i++ {
		candidates = append(candidates, dated(
			string(rune('a'+i%26))+"-cand", "recurring vendor payment", "10.00",
			time.Date(2024, 1, 1+i%27, 0, 0, 0, 0, time.UTC),
		))
	}

	got := accounting.FindSimilar(base, candidates, accounting.SimilarityOptions{MaxResults: 5})
	assert.Len(t, got, 5)
}

func TestFindSimilarAmountWithinTolerance(t *testing.T) {
	base := txn("base", "abc", domain.Expense, "1.00")
	cand := txn("c1", "xyz", domain.Income, "1.005")
	got := accounting.FindSimilar(base, []domain.Transaction{cand}, accounting.SimilarityOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Score)
}
