package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/webtrail/internal/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "timeline", cfg.Output.Format)
	assert.Equal(t, 100, cfg.Output.Limit)
	assert.Equal(t, 7, cfg.Output.DaysBack)
	assert.Equal(t, "hour", cfg.Analytics.GroupPatternsBy)
	assert.Equal(t, 20, cfg.Analytics.TopDomainsLimit)
	assert.False(t, cfg.Exports.AnonymizeURLs)
	assert.Len(t, cfg.EnabledBrowsers(), len(domain.AllBrowsers()), "everything enabled by default")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webtrail.toml")
	doc := `
[browsers]
safari = false
tor = false

[output]
format = "json"
limit = 25
days_back = 90

[filters]
domain_deny = ["ads.example.com"]
keywords = ["golang"]
min_visit_count = 2
max_visit_count = 50
time_from = "2025-06-01"
time_to = "2025-06-09T23:59:59Z"

[exports]
anonymize_urls = true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 25, cfg.Output.Limit)
	assert.Equal(t, 90, cfg.Output.DaysBack)
	assert.True(t, cfg.Exports.AnonymizeURLs)

	enabled := cfg.EnabledBrowsers()
	assert.NotContains(t, enabled, domain.BrowserSafari)
	assert.NotContains(t, enabled, domain.BrowserTor)
	assert.Contains(t, enabled, domain.BrowserChrome)

	spec, err := cfg.FilterSpec()
	require.NoError(t, err)
	assert.Equal(t, []string{"ads.example.com"}, spec.DomainDeny)
	assert.Equal(t, []string{"golang"}, spec.Keywords)
	assert.Equal(t, uint(2), spec.MinVisits)
	require.NotNil(t, spec.MaxVisits)
	assert.Equal(t, uint(50), *spec.MaxVisits)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), spec.From)
	assert.Equal(t, time.Date(2025, 6, 9, 23, 59, 59, 0, time.UTC), spec.To)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestFilterSpecBadTime(t *testing.T) {
	cfg := Default()
	cfg.Filters.TimeFrom = "yesterday"
	_, err := cfg.FilterSpec()
	assert.ErrorContains(t, err, "time_from")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WEBTRAIL_FORMAT", "csv")
	t.Setenv("WEBTRAIL_LIMIT", "5")
	t.Setenv("WEBTRAIL_DAYS_BACK", "14")
	t.Setenv("WEBTRAIL_ANONYMIZE", "1")

	cfg := Default()
	applyEnvOverrides(cfg)

	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 5, cfg.Output.Limit)
	assert.Equal(t, 14, cfg.Output.DaysBack)
	assert.True(t, cfg.Exports.AnonymizeURLs)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webtrail.toml")
	require.NoError(t, WriteDefault(path, false))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Output, cfg.Output, "written defaults round-trip")

	err = WriteDefault(path, false)
	assert.ErrorContains(t, err, "already exists")
	assert.NoError(t, WriteDefault(path, true))
}
