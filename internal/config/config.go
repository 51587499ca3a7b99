// ABOUTME: Centralized configuration for the FAQ bot
// ABOUTME: Defaults, optional YAML file overlay, then environment variables, then validation
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the FAQ bot
type Config struct {
	// Charm settings
	CharmHost   string `yaml:"charm_host"`
	CharmDBName string `yaml:"charm_db"`
	AutoSync    bool   `yaml:"charm_auto_sync"`

	// LLM fallback settings
	APIKey          string        `yaml:"-"`
	LLMBaseURL      string        `yaml:"llm_base_url"`
	ChatModel       string        `yaml:"model"`
	// Temperature 0 leaves sampling to the provider default
	Temperature     float64       `yaml:"temperature"`
	FallbackTimeout time.Duration `yaml:"fallback_timeout"`
	MaxRetries      int           `yaml:"max_retries"`
	RetryDelay      time.Duration `yaml:"retry_delay"`

	// Answer engine settings
	MatchThreshold float64       `yaml:"threshold"`
	HistorySize    int           `yaml:"history_size"`
	SessionTTL     time.Duration `yaml:"session_ttl"`

	// Storage and server settings
	// DBPath empty means the XDG data directory
	DBPath     string `yaml:"db_path"`
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		CharmHost:       "cloud.charm.sh",
		CharmDBName:     "faqbot",
		AutoSync:        true,
		LLMBaseURL:      "https://api.groq.com/openai/v1",
		ChatModel:       "llama-3.1-8b-instant",
		FallbackTimeout: 30 * time.Second,
		MaxRetries:      2,
		RetryDelay:      time.Second,
		MatchThreshold:  0.3,
		HistorySize:     6,
		SessionTTL:      24 * time.Hour,
		ListenAddr:      ":8080",
		LogLevel:        "info",
	}
}

// Load reads configuration from the optional FAQBOT_CONFIG file and environment variables
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("FAQBOT_CONFIG"); path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// MergeFile overlays values from a YAML file onto c. Keys absent from the file keep their value.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.CharmHost = getEnv("CHARM_HOST", c.CharmHost)
	c.CharmDBName = getEnv("CHARM_DB", c.CharmDBName)
	c.AutoSync = getEnvBool("CHARM_AUTO_SYNC", c.AutoSync)
	c.APIKey = getEnv("GROQ_API_KEY", os.Getenv("OPENAI_API_KEY"))
	c.LLMBaseURL = getEnv("FAQBOT_LLM_BASE_URL", c.LLMBaseURL)
	c.ChatModel = getEnv("FAQBOT_MODEL", c.ChatModel)
	c.Temperature = getEnvFloat("FAQBOT_TEMPERATURE", c.Temperature)
	c.FallbackTimeout = getEnvDuration("FAQBOT_FALLBACK_TIMEOUT", c.FallbackTimeout)
	c.MaxRetries = getEnvInt("FAQBOT_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("FAQBOT_RETRY_DELAY", c.RetryDelay)
	c.MatchThreshold = getEnvFloat("FAQBOT_THRESHOLD", c.MatchThreshold)
	c.HistorySize = getEnvInt("FAQBOT_HISTORY_SIZE", c.HistorySize)
	c.SessionTTL = getEnvDuration("FAQBOT_SESSION_TTL", c.SessionTTL)
	c.DBPath = getEnv("FAQBOT_DB_PATH", c.DBPath)
	c.ListenAddr = getEnv("FAQBOT_LISTEN_ADDR", c.ListenAddr)
	c.LogLevel = getEnv("FAQBOT_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("FAQBOT_LOG_FILE", c.LogFile)
}

func (c *Config) Validate() error {
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("FAQBOT_THRESHOLD must be 0-1, got %f", c.MatchThreshold)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("FAQBOT_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("FAQBOT_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("FAQBOT_HISTORY_SIZE must be positive, got %d", c.HistorySize)
	}
	if c.FallbackTimeout <= 0 {
		return fmt.Errorf("FAQBOT_FALLBACK_TIMEOUT must be positive, got %v", c.FallbackTimeout)
	}
	return nil
}

// HasLLM reports whether an API key for the fallback is configured
func (c *Config) HasLLM() bool {
	return c.APIKey != ""
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
