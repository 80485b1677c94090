package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/filter"
)

// Config holds application configuration
type Config struct {
	// Per-browser enable switches, keyed by browser id (chrome, firefox, ...).
	// Browsers absent from the map are enabled.
	Browsers map[string]bool `mapstructure:"browsers"`

	Output    OutputConfig    `mapstructure:"output"`
	Display   DisplayConfig   `mapstructure:"display"`
	Filters   FiltersConfig   `mapstructure:"filters"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Exports   ExportsConfig   `mapstructure:"exports"`
}

// OutputConfig holds defaults for the main output surface
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	Limit    int    `mapstructure:"limit"`
	DaysBack int    `mapstructure:"days_back"`
}

// DisplayConfig holds timeline rendering settings
type DisplayConfig struct {
	ShowURL        bool   `mapstructure:"show_url"`
	ShowVisitCount bool   `mapstructure:"show_visit_count"`
	DateFormat     string `mapstructure:"date_format"`
}

// FiltersConfig holds default filter settings applied to every run
type FiltersConfig struct {
	DomainAllow   []string `mapstructure:"domain_allow"`
	DomainDeny    []string `mapstructure:"domain_deny"`
	Keywords      []string `mapstructure:"keywords"`
	MinVisitCount uint     `mapstructure:"min_visit_count"`
	// MaxVisitCount of zero means no upper bound.
	MaxVisitCount uint   `mapstructure:"max_visit_count"`
	TimeFrom      string `mapstructure:"time_from"`
	TimeTo        string `mapstructure:"time_to"`
	UseRegex      bool   `mapstructure:"use_regex"`
}

// AnalyticsConfig holds defaults for the stats commands
type AnalyticsConfig struct {
	GroupPatternsBy string `mapstructure:"group_patterns_by"`
	TopDomainsLimit int    `mapstructure:"top_domains_limit"`
}

// ExportsConfig holds defaults for the export command
type ExportsConfig struct {
	AnonymizeURLs   bool `mapstructure:"anonymize_urls"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Browsers: map[string]bool{},
		Output: OutputConfig{
			Format:   "timeline",
			Limit:    100,
			DaysBack: 7,
		},
		Display: DisplayConfig{
			ShowURL:        true,
			ShowVisitCount: true,
			DateFormat:     "2006-01-02 15:04:05",
		},
		Filters: FiltersConfig{},
		Analytics: AnalyticsConfig{
			GroupPatternsBy: "hour",
			TopDomainsLimit: 20,
		},
		Exports: ExportsConfig{
			IncludeMetadata: true,
		},
	}
}

// EnabledBrowsers returns the browsers this config allows, in stable order
func (c *Config) EnabledBrowsers() []domain.Browser {
	var out []domain.Browser
	for _, b := range domain.AllBrowsers() {
		if enabled, ok := c.Browsers[b.Key()]; ok && !enabled {
			continue
		}
		out = append(out, b)
	}
	return out
}

// FilterSpec converts the config's filter section into a filter spec.
// Time bounds are RFC 3339 or "2006-01-02" date strings.
func (c *Config) FilterSpec() (filter.Spec, error) {
	spec := filter.Spec{
		DomainAllow: c.Filters.DomainAllow,
		DomainDeny:  c.Filters.DomainDeny,
		Keywords:    c.Filters.Keywords,
		MinVisits:   c.Filters.MinVisitCount,
		UseRegex:    c.Filters.UseRegex,
	}
	if c.Filters.MaxVisitCount > 0 {
		max := c.Filters.MaxVisitCount
		spec.MaxVisits = &max
	}
	var err error
	if spec.From, err = ParseTimeBound(c.Filters.TimeFrom); err != nil {
		return filter.Spec{}, fmt.Errorf("filters.time_from: %w", err)
	}
	if spec.To, err = ParseTimeBound(c.Filters.TimeTo); err != nil {
		return filter.Spec{}, fmt.Errorf("filters.time_to: %w", err)
	}
	return spec, nil
}

// ParseTimeBound parses an RFC 3339 timestamp or a bare date. Empty input
// yields the zero time (unbounded).
func ParseTimeBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.webtrail.toml or ./webtrail.toml
// 2. ~/.webtrail.toml
// 3. $XDG_CONFIG_HOME/webtrail/config.toml (or ~/.config/webtrail/config.toml)
// 4. /etc/webtrail/config.toml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".webtrail.toml", "webtrail.toml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "webtrail"))
	}
	searchPaths = append(searchPaths, "/etc/webtrail")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEBTRAIL_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("WEBTRAIL_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.Limit = n
		}
	}
	if v := os.Getenv("WEBTRAIL_DAYS_BACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.DaysBack = n
		}
	}
	if v := os.Getenv("WEBTRAIL_ANONYMIZE"); v == "true" || v == "1" {
		cfg.Exports.AnonymizeURLs = true
	}
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// defaultTOML is the annotated config written by init-config
const defaultTOML = `# webtrail configuration

[browsers]
chrome = true
firefox = true
safari = true
brave = true
opera = true
edge = true
vivaldi = true
tor = true
chromium = true
librewolf = true

[output]
# timeline, json, csv, stats, top-domains, browser-usage, patterns
format = "timeline"
limit = 100
days_back = 7

[display]
show_url = true
show_visit_count = true
date_format = "2006-01-02 15:04:05"

[filters]
domain_allow = []
domain_deny = []
keywords = []
min_visit_count = 0
max_visit_count = 0
# RFC 3339 timestamps or YYYY-MM-DD dates
time_from = ""
time_to = ""
use_regex = false

[analytics]
# hour, day, weekday, month
group_patterns_by = "hour"
top_domains_limit = 20

[exports]
anonymize_urls = false
include_metadata = true
`

// WriteDefault writes the annotated default config file. An existing file
// is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTOML), 0o644)
}
