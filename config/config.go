package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Upstream API configuration
	SectionsURL string
	OddsBaseURL string // odds URL prefix, the generation uid is appended
	UserAgent   string
	HTTPTimeout time.Duration

	// Cache configuration
	DataDir    string
	ResultsDir string
	CacheTTL   time.Duration

	// Simulation configuration
	SectionName string
	CaseName    string
	CaseCount   int
	Seed        uint64 // 0 picks a random seed

	// Reporting configuration
	ChartEnabled      bool
	DiscordWebhookURL string

	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	loadErr  error
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

var nonWordRuns = regexp.MustCompile(`\W+`)

// Get returns the global configuration instance
func Get() *Config {
	cfg, err := Init()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Init loads the global configuration on first use and returns it. A load
// error is remembered and returned on every later call.
func Init() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance, nil
	}

	once.Do(func() {
		instance, loadErr = load()
	})
	return instance, loadErr
}

// Load reads configuration from the environment (and .env when present)
// without touching the global instance.
func Load() (*Config, error) {
	return load()
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// A missing .env file is fine, the process environment is used as-is
	_ = godotenv.Load()

	config := &Config{
		// Upstream API
		SectionsURL: getEnvWithDefault("SECTIONS_URL", "https://gate.skin.club/apiv2/main-sections"),
		OddsBaseURL: getEnvWithDefault("ODDS_URL", "https://gate.skin.club/apiv2/odds/"),
		UserAgent:   getEnvWithDefault("USER_AGENT", "Mozilla/5.0"),
		HTTPTimeout: 30 * time.Second,

		// Cache
		DataDir:    getEnvWithDefault("DATA_DIR", "data"),
		ResultsDir: getEnvWithDefault("RESULTS_DIR", "results"),
		CacheTTL:   2 * time.Hour,

		// Simulation target
		SectionName: getEnvWithDefault("SECTION_NAME", "Crazy Moves"),
		CaseName:    getEnvWithDefault("CASE_NAME", "Who’s crazy?"),
		CaseCount:   1000,

		// Reporting
		ChartEnabled:      true,
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if timeout := os.Getenv("HTTP_TIMEOUT"); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", timeout, err)
		}
		config.HTTPTimeout = parsed
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL %q: %w", ttl, err)
		}
		config.CacheTTL = parsed
	}
	if count := os.Getenv("CASE_COUNT"); count != "" {
		parsed, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("invalid CASE_COUNT %q: %w", count, err)
		}
		config.CaseCount = parsed
	}
	if seed := os.Getenv("SIM_SEED"); seed != "" {
		parsed, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SIM_SEED %q: %w", seed, err)
		}
		config.Seed = parsed
	}
	if chart := os.Getenv("CHART_ENABLED"); chart != "" {
		parsed, err := strconv.ParseBool(chart)
		if err != nil {
			return nil, fmt.Errorf("invalid CHART_ENABLED %q: %w", chart, err)
		}
		config.ChartEnabled = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration can drive a pipeline run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SectionsURL) == "" {
		return fmt.Errorf("SECTIONS_URL is required")
	}
	if strings.TrimSpace(c.OddsBaseURL) == "" {
		return fmt.Errorf("ODDS_URL is required")
	}
	if strings.TrimSpace(c.SectionName) == "" {
		return fmt.Errorf("SECTION_NAME is required")
	}
	if strings.TrimSpace(c.CaseName) == "" {
		return fmt.Errorf("CASE_NAME is required")
	}
	if c.CaseCount <= 0 {
		return fmt.Errorf("CASE_COUNT must be positive, got %d", c.CaseCount)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL cannot be negative, got %s", c.CacheTTL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// CaseSlug returns the case name lower-cased with every run of non-word
// characters replaced by an underscore, for use in file names.
func (c *Config) CaseSlug() string {
	return nonWordRuns.ReplaceAllString(strings.ToLower(c.CaseName), "_")
}

// MainSectionsCacheName is the cache file name of the catalog
func (c *Config) MainSectionsCacheName() string {
	return "main_sections.json"
}

// OddsCacheName is the cache file name of the target case's odds listing
func (c *Config) OddsCacheName() string {
	return fmt.Sprintf("odds_%s.json", c.CaseSlug())
}

// FilteredOddsName is the file name of the cleaned odds table
func (c *Config) FilteredOddsName() string {
	return fmt.Sprintf("filtered_odds_%s.json", c.CaseSlug())
}

// ResultsName is the file name of the simulation report
func (c *Config) ResultsName() string {
	return fmt.Sprintf("results_%s.json", c.CaseSlug())
}

// ChartPath is the full path of the drop chart
func (c *Config) ChartPath() string {
	return filepath.Join(c.ResultsDir, fmt.Sprintf("drops_%s.png", c.CaseSlug()))
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	loadErr = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		SectionsURL: "http://127.0.0.1/apiv2/main-sections",
		OddsBaseURL: "http://127.0.0.1/apiv2/odds/",
		UserAgent:   "Mozilla/5.0",
		HTTPTimeout: 5 * time.Second,
		DataDir:     "data",
		ResultsDir:  "results",
		CacheTTL:    2 * time.Hour,
		SectionName: "S",
		CaseName:    "C",
		CaseCount:   100,
		Seed:        42,
		LogLevel:    "info",
		Environment: "test",
	}
}
