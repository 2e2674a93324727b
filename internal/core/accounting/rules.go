package accounting

import (
	"sort"
	"strings"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// MatchRule returns the rule that wins for txn, or nil when no rule matches.
// A rule matches when its keyword appears case-insensitively in the
// transaction's description or original description and its target type, if
// set, equals the transaction's type. The longest keyword wins; equal-length
// keywords keep their input order.
func MatchRule(txn domain.Transaction, rules []domain.CategorizationRule) *domain.CategorizationRule {
	ordered := make([]domain.CategorizationRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Keyword) > len(ordered[j].Keyword)
	})

	desc := strings.ToLower(txn.Description)
	origDesc := strings.ToLower(txn.OriginalDescription)

	for i := range ordered {
		r := &ordered[i]
		if r.Keyword == "" {
			continue
		}
		if r.TargetType != "" && r.TargetType != txn.Type {
			continue
		}
		kw := strings.ToLower(r.Keyword)
		if strings.Contains(desc, kw) || strings.Contains(origDesc, kw) {
			return r
		}
	}
	return nil
}

// ApplyRules returns a copy of txns with each transaction's category set to
// its winning rule's target. Transactions with no matching rule are returned
// unchanged, so already-categorized ones keep their category. The input
// slice is never mutated and applying twice yields the same result.
func ApplyRules(txns []domain.Transaction, rules []domain.CategorizationRule) []domain.Transaction {
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)
	for i := range out {
		if r := MatchRule(out[i], rules); r != nil {
			out[i].Category = r.TargetCategory
		}
	}
	return out
}
