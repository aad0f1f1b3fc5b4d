package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	RunMigrations    bool   `toml:"run_migrations"`
	RecentSetsWindow int    `toml:"recent_sets_window"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// in-memory kv store used when redis is disabled, and for auth checks.
	// Development only: unlocked achievements do not survive evictions or restarts.
	UseRedisStore       bool `toml:"use_redis_store"`
	MemoryStoreSizeMB   int  `toml:"memory_store_size_mb"`
	AuthCacheTTLSeconds int  `toml:"auth_cache_ttl_seconds"`

	// progression
	DefaultWeightIncrement float64 `toml:"default_weight_increment"`

	// rate limiting of write routes
	WriteRateLimitAllowedPerMin int `toml:"write_rate_limit_allowed_per_min"`

	// cors
	AllowedOrigins []string `toml:"allowed_origins"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

// ErrVolatileStoreInProduction is returned for a production section without
// the redis store. The in-memory store evicts entries and is empty after a
// restart, so unlocked achievements would not stay unlocked.
var ErrVolatileStoreInProduction = errors.New("production requires use_redis_store = true")

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	production := false
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
		production = true
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	if production && !cfg.UseRedisStore {
		return nil, ErrVolatileStoreInProduction
	}
	cfg.setDefaults()
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

// Parse is like Load but reads the TOML from a string.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return t.Get(env)
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RecentSetsWindow <= 0 {
		c.RecentSetsWindow = 50
	}
	if c.MemoryStoreSizeMB <= 0 {
		c.MemoryStoreSizeMB = 16
	}
	if c.AuthCacheTTLSeconds <= 0 {
		c.AuthCacheTTLSeconds = 300
	}
	if c.DefaultWeightIncrement <= 0 {
		c.DefaultWeightIncrement = 2.5
	}
	if c.WriteRateLimitAllowedPerMin <= 0 {
		c.WriteRateLimitAllowedPerMin = 120
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}
