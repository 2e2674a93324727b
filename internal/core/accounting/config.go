package accounting

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bucket is the balance sheet (or P&L) section a category name resolves to.
type Bucket string

const (
	BucketCurrentAsset      Bucket = "CURRENT_ASSET"
	BucketFixedAsset        Bucket = "FIXED_ASSET"
	BucketCurrentLiability  Bucket = "CURRENT_LIABILITY"
	BucketLongTermLiability Bucket = "LONG_TERM_LIABILITY"
	BucketEquity            Bucket = "EQUITY"
	BucketProfitAndLoss     Bucket = "PROFIT_AND_LOSS_ITEM"
)

// Config holds the classifier's name table and keyword lists. All keys and
// terms are matched case-insensitively; DefaultConfig stores them lowercase
// and LoadConfig normalizes on read.
type Config struct {
	DefaultBuckets         map[string]Bucket `yaml:"defaultBuckets"`
	FixedAssetTerms        []string          `yaml:"fixedAssetTerms"`
	LongTermLiabilityTerms []string          `yaml:"longTermLiabilityTerms"`
	CurrentLiabilityTerms  []string          `yaml:"currentLiabilityTerms"`
}

// DefaultConfig returns the built-in classifier tables used when no config
// file is supplied.
func DefaultConfig() Config {
	return Config{
		DefaultBuckets: map[string]Bucket{
			"inventory":           BucketCurrentAsset,
			"accounts receivable": BucketCurrentAsset,
			"prepaid expenses":    BucketCurrentAsset,
			"loans":               BucketLongTermLiability,
			"accounts payable":    BucketCurrentLiability,
			"owner's capital":     BucketEquity,
			"withdrawal":          BucketEquity,
			// Common misspelling seen in imported statements.
			"withdrawl": BucketEquity,

			"sales":              BucketProfitAndLoss,
			"revenue":            BucketProfitAndLoss,
			"interest income":    BucketProfitAndLoss,
			"rent":               BucketProfitAndLoss,
			"salaries":           BucketProfitAndLoss,
			"wages":              BucketProfitAndLoss,
			"utilities":          BucketProfitAndLoss,
			"insurance":          BucketProfitAndLoss,
			"advertising":        BucketProfitAndLoss,
			"office supplies":    BucketProfitAndLoss,
			"professional fees":  BucketProfitAndLoss,
			"bank charges":       BucketProfitAndLoss,
			"travel":             BucketProfitAndLoss,
			"meals":              BucketProfitAndLoss,
			"subscriptions":      BucketProfitAndLoss,
			"cost of goods sold": BucketProfitAndLoss,
		},
		FixedAssetTerms: []string{
			"equipment", "vehicle", "machinery", "furniture",
			"property", "building", "computer",
		},
		LongTermLiabilityTerms: []string{
			"loan", "mortgage", "debenture", "bond",
		},
		CurrentLiabilityTerms: []string{
			"payable", "credit card", "overdraft", "accrued",
		},
	}
}

// LoadConfig reads a YAML classifier config from path and merges it over the
// defaults. Sections present in the file replace the corresponding default
// section wholesale; absent sections keep the built-ins.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read classifier config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse classifier config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if len(fileCfg.DefaultBuckets) > 0 {
		cfg.DefaultBuckets = normalizeBuckets(fileCfg.DefaultBuckets)
	}
	if len(fileCfg.FixedAssetTerms) > 0 {
		cfg.FixedAssetTerms = normalizeTerms(fileCfg.FixedAssetTerms)
	}
	if len(fileCfg.LongTermLiabilityTerms) > 0 {
		cfg.LongTermLiabilityTerms = normalizeTerms(fileCfg.LongTermLiabilityTerms)
	}
	if len(fileCfg.CurrentLiabilityTerms) > 0 {
		cfg.CurrentLiabilityTerms = normalizeTerms(fileCfg.CurrentLiabilityTerms)
	}

	for name, bucket := range cfg.DefaultBuckets {
		if !validBucket(bucket) {
			return Config{}, fmt.Errorf("classifier config %s: unknown bucket %q for %q", path, bucket, name)
		}
	}
	return cfg, nil
}

func normalizeBuckets(in map[string]Bucket) map[string]Bucket {
	out := make(map[string]Bucket, len(in))
	for name, bucket := range in {
		out[strings.ToLower(strings.TrimSpace(name))] = Bucket(strings.ToUpper(string(bucket)))
	}
	return out
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, term := range in {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}

func validBucket(b Bucket) bool {
	switch b {
	case BucketCurrentAsset, BucketFixedAsset, BucketCurrentLiability,
		BucketLongTermLiability, BucketEquity, BucketProfitAndLoss:
		return true
	}
	return false
}
