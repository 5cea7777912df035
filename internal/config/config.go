// Package config handles configuration loading for Econ-Mood.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Database  DatabaseConfig  `mapstructure:"database"  yaml:"database"`
	Collector CollectorConfig `mapstructure:"collector" yaml:"collector"`
	Sentiment SentimentConfig `mapstructure:"sentiment" yaml:"sentiment"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	Dedupe    DedupeConfig    `mapstructure:"dedupe"    yaml:"dedupe"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"          yaml:"host"`
	Port        int      `mapstructure:"port"          yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"  yaml:"cors_origins"`
}

// DatabaseConfig holds SQLite storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// CollectorConfig holds collection pipeline settings.
type CollectorConfig struct {
	Strategy      string `mapstructure:"strategy"       yaml:"strategy"`       // "rss" or "scrape"
	Fallback      bool   `mapstructure:"fallback"       yaml:"fallback"`       // wrap the source with canned fallback data
	Concurrency   int    `mapstructure:"concurrency"    yaml:"concurrency"`    // parallel region collections
	LookbackHours int    `mapstructure:"lookback_hours" yaml:"lookback_hours"` // trend/keyword window
	TopHeadlines  int    `mapstructure:"top_headlines"  yaml:"top_headlines"`  // headlines kept on an aggregate
}

// SentimentConfig holds classifier and bucketing settings.
type SentimentConfig struct {
	Classifier    string  `mapstructure:"classifier"     yaml:"classifier"`     // "lexicon"
	BullThreshold float64 `mapstructure:"bull_threshold" yaml:"bull_threshold"` // score above this is a bull headline
	BearThreshold float64 `mapstructure:"bear_threshold" yaml:"bear_threshold"` // score below this is a bear headline
}

// CacheConfig holds region cache settings.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries"`
}

// DedupeConfig holds cross-cycle headline dedupe settings.
type DedupeConfig struct {
	Enabled   bool   `mapstructure:"enabled"    yaml:"enabled"`
	Backend   string `mapstructure:"backend"    yaml:"backend"` // "memory" or "redis"
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`
	TTLHours  int    `mapstructure:"ttl_hours"  yaml:"ttl_hours"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.econmood/config.yaml (home directory)
//  3. /etc/econmood/config.yaml (system)
//
// Environment variables override config file values.
// Format: ECONMOOD_<SECTION>_<KEY>, e.g., ECONMOOD_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".econmood"))
	v.AddConfigPath("/etc/econmood")

	v.SetEnvPrefix("ECONMOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("ECONMOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.path", "sentiment_history.db")

	// Collector defaults
	v.SetDefault("collector.strategy", "rss")
	v.SetDefault("collector.fallback", true)
	v.SetDefault("collector.concurrency", 4)
	v.SetDefault("collector.lookback_hours", 24)
	v.SetDefault("collector.top_headlines", 10)

	// Sentiment defaults
	v.SetDefault("sentiment.classifier", "lexicon")
	v.SetDefault("sentiment.bull_threshold", 0.2)
	v.SetDefault("sentiment.bear_threshold", -0.2)

	// Cache defaults
	v.SetDefault("cache.ttl_seconds", 900) // 15 minutes
	v.SetDefault("cache.max_entries", 100)

	// Dedupe defaults
	v.SetDefault("dedupe.enabled", false)
	v.SetDefault("dedupe.backend", "memory")
	v.SetDefault("dedupe.redis_addr", "localhost:6379")
	v.SetDefault("dedupe.ttl_hours", 24)

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
