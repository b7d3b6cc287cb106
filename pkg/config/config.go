// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/conf"
	"gopkg.in/yaml.v3"
)

// VectorDimension is the fixed dimensionality of every stored embedding.
const VectorDimension = 1536

// Config represents the talent matcher configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Search      SearchConfig      `yaml:"search"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Cache       CacheConfig       `yaml:"cache"`
	Backfill    BackfillConfig    `yaml:"backfill"`
	Log         conf.LogConfig    `yaml:"log"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"db_name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

// DSN returns the postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// EmbeddingConfig represents embedding provider configuration.
// An empty APIKey disables embedding generation without being an error.
type EmbeddingConfig struct {
	Model     string        `yaml:"model"`
	Dimension int           `yaml:"dimension"`
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// SearchConfig holds the retrieval thresholds and caps
type SearchConfig struct {
	DistanceThreshold   float64 `yaml:"distance_threshold"`
	BioLimit            int     `yaml:"bio_limit"`
	SkillLimit          int     `yaml:"skill_limit"`
	SkillCandidateLimit int     `yaml:"skill_candidate_limit"`
	KeywordLimit        int     `yaml:"keyword_limit"`
	DefaultLimit        int     `yaml:"default_limit"`
	MaxLimit            int     `yaml:"max_limit"`
}

// VectorStoreConfig controls the indexed-column mirror
type VectorStoreConfig struct {
	MirrorTimeout time.Duration `yaml:"mirror_timeout"`
}

// CacheConfig controls the candidate summary cache. Entries are evicted on
// writes made through this service only; edits made by other writers of the
// candidates table show up once TTL expires.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// BackfillConfig controls the embedding backfill command
type BackfillConfig struct {
	Workers  int `yaml:"workers"`
	PageSize int `yaml:"page_size"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvInt("SERVER_PORT", 8080),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "talent-matcher"),
			Password:        getEnv("DB_PASSWORD", ""),
			DBName:          getEnv("DB_NAME", "talent-matcher"),
			SSLMode:         getEnv("DB_SSL_MODE", "require"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Embedding: EmbeddingConfig{
			Model:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Dimension: getEnvInt("EMBEDDING_DIMENSION", VectorDimension),
			APIKey:    getEnv("EMBEDDING_API_KEY", ""),
			BaseURL:   getEnv("EMBEDDING_BASE_URL", ""),
			Timeout:   getEnvDuration("EMBEDDING_TIMEOUT", 30*time.Second),
		},
		Search: SearchConfig{
			DistanceThreshold:   getEnvFloat("SEARCH_DISTANCE_THRESHOLD", 0.7),
			BioLimit:            getEnvInt("SEARCH_BIO_LIMIT", 50),
			SkillLimit:          getEnvInt("SEARCH_SKILL_LIMIT", 10),
			SkillCandidateLimit: getEnvInt("SEARCH_SKILL_CANDIDATE_LIMIT", 50),
			KeywordLimit:        getEnvInt("SEARCH_KEYWORD_LIMIT", 50),
			DefaultLimit:        getEnvInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:            getEnvInt("SEARCH_MAX_LIMIT", 100),
		},
		VectorStore: VectorStoreConfig{
			MirrorTimeout: getEnvDuration("VECTOR_MIRROR_TIMEOUT", 5*time.Second),
		},
		Cache: CacheConfig{
			Enabled:         getEnvBool("CACHE_ENABLED", true),
			TTL:             getEnvDuration("CACHE_TTL", time.Minute),
			CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 2*time.Minute),
		},
		Backfill: BackfillConfig{
			Workers:  getEnvInt("BACKFILL_WORKERS", 4),
			PageSize: getEnvInt("BACKFILL_PAGE_SIZE", 200),
		},
		Log: conf.LogConfig{
			Level:      conf.Level(getEnv("LOG_LEVEL", string(conf.InfoLevel))),
			Formatter:  conf.Formatter(getEnv("LOG_FORMAT", string(conf.ConsoleFormater))),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 14),
		},
	}

	// Try to load from config file
	configPath := getEnv("CONFIG_PATH", "/etc/talent-matcher/config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the matching engine cannot run with
func (c *Config) Validate() error {
	if c.Embedding.Dimension != VectorDimension {
		return fmt.Errorf("embedding dimension must be %d, got %d", VectorDimension, c.Embedding.Dimension)
	}
	if c.Search.DistanceThreshold <= 0 || c.Search.DistanceThreshold > 2 {
		return fmt.Errorf("search distance threshold must be in (0, 2], got %v", c.Search.DistanceThreshold)
	}
	if c.Search.DefaultLimit <= 0 || c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("invalid search limits: default=%d max=%d", c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	if c.Search.BioLimit <= 0 || c.Search.SkillLimit <= 0 || c.Search.SkillCandidateLimit <= 0 || c.Search.KeywordLimit <= 0 {
		return fmt.Errorf("search caps must be positive")
	}
	if c.VectorStore.MirrorTimeout <= 0 {
		return fmt.Errorf("vector store mirror timeout must be positive")
	}
	return c.Log.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
