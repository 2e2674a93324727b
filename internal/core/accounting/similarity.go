package accounting

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// SimilarityOptions tunes FindSimilar. Zero values fall back to the
// defaults from DefaultSimilarityOptions.
type SimilarityOptions struct {
	MinTokenOverlap int
	AmountTolerance decimal.Decimal
	MaxResults      int
}

// DefaultSimilarityOptions returns the tuning used when callers pass the
// zero value.
func DefaultSimilarityOptions() SimilarityOptions {
	return SimilarityOptions{
		MinTokenOverlap: 2,
		AmountTolerance: decimal.RequireFromString("0.01"),
		MaxResults:      25,
	}
}

// SimilarTransaction pairs a candidate with its similarity score.
type SimilarTransaction struct {
	Transaction domain.Transaction
	Score       int
}

// FindSimilar ranks candidates by similarity to base. A candidate scores one
// point when its amount is within the tolerance of base's and two points per
// shared description token. Candidates are eligible when they score at all
// and either share at least MinTokenOverlap tokens or fall within the amount
// tolerance. Results are sorted by score descending, then date descending,
// and base itself is always excluded.
func FindSimilar(base domain.Transaction, candidates []domain.Transaction, opts SimilarityOptions) []SimilarTransaction {
	defaults := DefaultSimilarityOptions()
	if opts.MinTokenOverlap <= 0 {
		opts.MinTokenOverlap = defaults.MinTokenOverlap
	}
	if opts.AmountTolerance.IsZero() {
		opts.AmountTolerance = defaults.AmountTolerance
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaults.MaxResults
	}

	baseTokens := tokenize(base.Description)

	var matches []SimilarTransaction
	for _, cand := range candidates {
		if cand.TransactionID == base.TransactionID {
			continue
		}

		score := 0
		amountClose := cand.Amount.Sub(base.Amount).Abs().LessThanOrEqual(opts.AmountTolerance)
		if amountClose {
			score++
		}

		overlap := 0
		candTokens := tokenize(cand.Description)
		for token := range candTokens {
			if _, ok := baseTokens[token]; ok {
				overlap++
			}
		}
		score += 2 * overlap

		if score == 0 {
			continue
		}
		if overlap < opts.MinTokenOverlap && !amountClose {
			continue
		}
		matches = append(matches, SimilarTransaction{Transaction: cand, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Transaction.Date.After(matches[j].Transaction.Date)
	})

	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches
}

// tokenize lowercases, splits on anything that is not a letter or digit in
// any script, and drops single-rune tokens.
func tokenize(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var b []rune
	flush := func() {
		if len(b) > 1 {
			tokens[string(b)] = struct{}{}
		}
		b = b[:0]
	}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b = append(b, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
