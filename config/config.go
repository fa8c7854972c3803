package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Dosada05/atletica-scoreboard/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	defaultSQLiteURL = "file:scoreboard.db?_foreign_keys=on"
)

// Config holds every setting of the service.
type Config struct {
	DatabaseDriver string
	DatabaseURL    string
	ServerPort     int
	LogLevel       slog.Level
	MigrateOnStart bool

	// PublicScoreboardURL is where viewers open the scoreboard; the QR code
	// export points here.
	PublicScoreboardURL string
	CORSAllowedOrigins  []string
	RateLimitRPS        float64
	RateLimitBurst      int

	DefaultScoreRule          models.ScoreRule
	ScoreRuleOverridesEnabled bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// OTLPEndpoint is the OTLP/gRPC collector traces are exported to, e.g.
	// http://otel-collector:4317. Empty disables tracing.
	OTLPEndpoint     string
	TraceSampleRatio float64
}

// TracingEnabled reports whether an OTLP collector is configured.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// ScoreRulesFile is the YAML layout of SCORE_RULES_FILE.
type ScoreRulesFile struct {
	Default          []int `yaml:"default"`
	OverridesEnabled *bool `yaml:"overrides_enabled"`
}

// PublishingEnabled reports whether R2 credentials are configured.
func (c *Config) PublishingEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseDriver:            envOr("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		PublicScoreboardURL:       envOr("PUBLIC_SCOREBOARD_URL", "http://localhost:5173"),
		DefaultScoreRule:          models.DefaultScoreRule,
		ScoreRuleOverridesEnabled: true,
		R2AccountID:               os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:             os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:         os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:              os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:           os.Getenv("R2_PUBLIC_BASE_URL"),
		OTLPEndpoint:              os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLiteURL
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (want %s or %s)", cfg.DatabaseDriver, DriverPostgres, DriverSQLite)
	}

	port, err := strconv.Atoi(envOr("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	if cfg.MigrateOnStart, err = strconv.ParseBool(envOr("MIGRATE_ON_START", "true")); err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_ON_START environment variable: %w", err)
	}

	for _, origin := range strings.Split(envOr("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.RateLimitRPS, err = strconv.ParseFloat(envOr("RATE_LIMIT_RPS", "10"), 64); err != nil || cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(envOr("RATE_LIMIT_BURST", "20")); err != nil || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer")
	}

	if cfg.TraceSampleRatio, err = strconv.ParseFloat(envOr("TRACE_SAMPLE_RATIO", "1"), 64); err != nil || cfg.TraceSampleRatio < 0 || cfg.TraceSampleRatio > 1 {
		return nil, fmt.Errorf("TRACE_SAMPLE_RATIO must be a number between 0 and 1")
	}

	if path := os.Getenv("SCORE_RULES_FILE"); path != "" {
		if err := cfg.loadScoreRules(path); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("SCORE_RULE_OVERRIDES_ENABLED"); v != "" {
		if cfg.ScoreRuleOverridesEnabled, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid SCORE_RULE_OVERRIDES_ENABLED environment variable: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) loadScoreRules(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read score rules file: %w", err)
	}

	var file ScoreRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal score rules file: %w", err)
	}

	if len(file.Default) > 0 {
		rule := models.ScoreRule(file.Default)
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("score rules file %s: %w", path, err)
		}
		c.DefaultScoreRule = rule
	}
	if file.OverridesEnabled != nil {
		c.ScoreRuleOverridesEnabled = *file.OverridesEnabled
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
