package accounting

import (
	"strings"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// Registry exposes the user-defined categories to the classifier, keyed by
// lowercase name. A nil or empty registry is valid and simply disables the
// first classification tier.
type Registry map[string]domain.Category

// NewRegistry builds a Registry from a category list. Later duplicates win,
// matching last-write semantics on the underlying store.
func NewRegistry(categories []domain.Category) Registry {
	reg := make(Registry, len(categories))
	for _, c := range categories {
		reg[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}
	return reg
}

// Classifier resolves a category name to a statement bucket using three
// tiers: the registry's declared account type, the default name table, then
// keyword heuristics. Anything unresolved lands in the profit and loss
// statement so no transaction is ever silently dropped.
type Classifier struct {
	cfg Config
}

// NewClassifier returns a Classifier backed by cfg.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify resolves name to a bucket. Matching is case-insensitive
// throughout; reg may be nil.
func (c *Classifier) Classify(name string, reg Registry) Bucket {
	lower := strings.ToLower(strings.TrimSpace(name))

	// Tier 1: explicit account type declared on the user's category.
	if cat, ok := reg[lower]; ok && cat.AccountType != "" {
		if b, ok := bucketForAccountType(cat.AccountType); ok {
			return b
		}
	}

	// Tier 2: built-in name table.
	if b, ok := c.cfg.DefaultBuckets[lower]; ok {
		return b
	}

	// Tier 3: keyword heuristics, most specific section first.
	for _, term := range c.cfg.FixedAssetTerms {
		if strings.Contains(lower, term) {
			return BucketFixedAsset
		}
	}
	for _, term := range c.cfg.LongTermLiabilityTerms {
		if strings.Contains(lower, term) {
			return BucketLongTermLiability
		}
	}
	for _, term := range c.cfg.CurrentLiabilityTerms {
		if strings.Contains(lower, term) {
			return BucketCurrentLiability
		}
	}

	return BucketProfitAndLoss
}

func bucketForAccountType(t domain.AccountType) (Bucket, bool) {
	switch t {
	case domain.AccountTypeCurrentAsset, domain.AccountTypeAsset:
		return BucketCurrentAsset, true
	case domain.AccountTypeFixedAsset:
		return BucketFixedAsset, true
	case domain.AccountTypeCurrentLiability, domain.AccountTypeLiability:
		return BucketCurrentLiability, true
	case domain.AccountTypeLongTermLiability:
		return BucketLongTermLiability, true
	case domain.AccountTypeEquity:
		return BucketEquity, true
	case domain.AccountTypeIncome, domain.AccountTypeExpense:
		return BucketProfitAndLoss, true
	}
	return "", false
}
