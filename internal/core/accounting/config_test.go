package accounting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-hq/finsight_backend/internal/core/accounting"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classifier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
defaultBuckets:
  Goodwill: FIXED_ASSET
fixedAssetTerms:
  - " Plant "
`)

	cfg, err := accounting.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, accounting.BucketFixedAsset, cfg.DefaultBuckets["goodwill"])
	assert.NotContains(t, cfg.DefaultBuckets, "inventory", "file bucket table replaces the default table")
	assert.Equal(t, []string{"plant"}, cfg.FixedAssetTerms)
	assert.Equal(t, accounting.DefaultConfig().CurrentLiabilityTerms, cfg.CurrentLiabilityTerms)
}

func TestLoadConfigRejectsUnknownBucket(t *testing.T) {
	path := writeConfigFile(t, `
defaultBuckets:
  goodwill: INTANGIBLE
`)
	_, err := accounting.LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := accounting.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
