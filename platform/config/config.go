// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides Redis connection settings for the conversation state
// store and the background scheduler.
type RedisConfig interface {
	GetRedisURL() string
}

// HTTPConfig provides settings for the HTTP webhook server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetWebhookSecret() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// AIConfig provides settings for the AI collaborator adapters.
type AIConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetAITimeout() time.Duration
	IsAIEnabled() bool
}

// ConversationConfig provides settings for the conversation engine.
type ConversationConfig interface {
	GetDefaultLanguage() string
	GetConversationTTL() time.Duration
}

// SchedulerConfig provides settings for the asynq worker.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetReapInterval() time.Duration
}

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env           string
	HTTPAddr      string
	WebhookSecret string
	CORSAllowAll  bool
	CORSOrigins   []string

	DatabaseURL string
	RedisURL    string

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	DefaultLanguage string
	ConversationTTL time.Duration

	AsynqQueueName string
	ReapInterval   time.Duration
}

// Load reads configuration from the environment, with .env support for
// development. Only DATABASE_URL is strictly required; every collaborator
// degrades gracefully when unconfigured.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", ""))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		WebhookSecret:   getEnv("WEBHOOK_SECRET", ""),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeout:       getDuration("AI_TIMEOUT", 30*time.Second),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		ConversationTTL: getDuration("CONVERSATION_TTL", 24*time.Hour),
		AsynqQueueName:  getEnv("ASYNQ_QUEUE", "default"),
		ReapInterval:    getDuration("REAP_INTERVAL", time.Hour),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetRedisURL() string { return c.RedisURL }

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetWebhookSecret() string { return c.WebhookSecret }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

func (c *Config) GetGeminiAPIKey() string     { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string      { return c.GeminiModel }
func (c *Config) GetAITimeout() time.Duration { return c.AITimeout }
func (c *Config) IsAIEnabled() bool           { return c.GeminiAPIKey != "" }

func (c *Config) GetDefaultLanguage() string        { return c.DefaultLanguage }
func (c *Config) GetConversationTTL() time.Duration { return c.ConversationTTL }

func (c *Config) GetAsynqQueueName() string      { return c.AsynqQueueName }
func (c *Config) GetReapInterval() time.Duration { return c.ReapInterval }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// getDuration parses a duration from the environment. A malformed value
// falls back to the documented default rather than silently becoming zero.
func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
