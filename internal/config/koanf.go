package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"trending-api/internal/cache"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/trending-api/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8008,
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           "trending.db",
			LogLevel:       "warn",
			SeedCategories: true,
		},
		Cache: CacheConfig{
			MaxEntries:    1024,
			SweepInterval: cache.DefaultSweepInterval,
		},
		Ranking: RankingConfig{
			QueryTimeout:    5 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			JWTSecret:     DefaultJWTSecret,
			JWTIssuer:     "trending-api",
			JWTAudience:   "trending-api-clients",
			TokenTTL:      24 * time.Hour,
			AdminUsername: "admin",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the config file at path
// (or the first of DefaultConfigPaths that exists when path is empty), and
// environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	"http_host":                "server.host",
	"http_port":                "server.port",
	"gin_mode":                 "server.mode",
	"shutdown_timeout":         "server.shutdown_timeout",
	"db_path":                  "database.path",
	"db_log_level":             "database.log_level",
	"seed_categories":          "database.seed_categories",
	"cache_max_entries":        "cache.max_entries",
	"cache_sweep_interval":     "cache.sweep_interval",
	"ranking_query_timeout":    "ranking.query_timeout",
	"ranking_breaker_failures": "ranking.breaker_failures",
	"ranking_breaker_timeout":  "ranking.breaker_timeout",
	"jwt_secret":               "security.jwt_secret",
	"jwt_issuer":               "security.jwt_issuer",
	"jwt_audience":             "security.jwt_audience",
	"jwt_ttl":                  "security.token_ttl",
	"admin_username":           "security.admin_username",
	"admin_password_hash":      "security.admin_password_hash",
	"log_level":                "logging.level",
	"log_format":               "logging.format",
	"log_caller":               "logging.caller",
}

// envTransformFunc turns HTTP_PORT into server.port. Returning "" makes
// koanf skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
