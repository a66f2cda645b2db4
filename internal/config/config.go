// Package config loads server configuration with koanf: built-in defaults,
// then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Ranking  RankingConfig  `koanf:"ranking"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode            string        `koanf:"mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
	// LogLevel is the gorm logger level: silent, error, warn, info.
	LogLevel string `koanf:"log_level"`
	// SeedCategories inserts the default categories when the table is empty.
	SeedCategories bool `koanf:"seed_categories"`
}

type CacheConfig struct {
	// MaxEntries bounds the process cache (LRU). 0 means unbounded.
	MaxEntries    int           `koanf:"max_entries"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type RankingConfig struct {
	// QueryTimeout bounds each aggregation query. 0 selects the default.
	QueryTimeout time.Duration `koanf:"query_timeout"`
	// BreakerFailures is the number of consecutive query failures that opens the circuit.
	BreakerFailures uint32 `koanf:"breaker_failures"`
	// BreakerTimeout is how long the circuit stays open before a trial request.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

type SecurityConfig struct {
	JWTSecret   string        `koanf:"jwt_secret"`
	JWTIssuer   string        `koanf:"jwt_issuer"`
	JWTAudience string        `koanf:"jwt_audience"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	// AdminUsername and AdminPasswordHash (bcrypt) gate the admin routes.
	// An empty hash disables admin login.
	AdminUsername     string `koanf:"admin_username"`
	AdminPasswordHash string `koanf:"admin_password_hash"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DefaultJWTSecret is the built-in signing key. It is only accepted while
// admin login is disabled.
const DefaultJWTSecret = "development-insecure-secret-change-me"

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.max_entries must be >= 0, got %d", c.Cache.MaxEntries))
	}
	if c.Cache.SweepInterval <= 0 {
		errs = append(errs, errors.New("cache.sweep_interval must be positive"))
	}
	if c.Ranking.QueryTimeout < 0 {
		errs = append(errs, errors.New("ranking.query_timeout must be >= 0"))
	}
	if c.Security.JWTSecret == "" {
		errs = append(errs, errors.New("security.jwt_secret is required"))
	}
	if c.Security.AdminPasswordHash != "" && c.Security.JWTSecret == DefaultJWTSecret {
		errs = append(errs, errors.New("security.jwt_secret must be changed from the default when admin login is enabled"))
	}
	if c.Security.TokenTTL <= 0 {
		errs = append(errs, errors.New("security.token_ttl must be positive"))
	}
	return errors.Join(errs...)
}
