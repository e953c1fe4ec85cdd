package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

type Config struct {
	Wiki     WikiConfig
	Resolver ResolverConfig
	Relay    RelayConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Bot      BotConfig
}

type WikiConfig struct {
	APIURL      string
	UserAgent   string
	HTTPTimeout time.Duration
}

type ResolverConfig struct {
	SearchLimit      int
	SummarySentences int
	CallTimeout      time.Duration
	MaxAmbiguity     int
	MaxRelated       int
}

type RelayConfig struct {
	BaseURL              string
	WSURL                string
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
}

type MetricsConfig struct {
	// Addr is empty when the metrics endpoint is disabled.
	Addr string
}

type LoggingConfig struct {
	Level string
	File  string
}

type BotConfig struct {
	Prefix string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a config from the environment without validating it.
func FromEnv() *Config {
	return &Config{
		Wiki: WikiConfig{
			APIURL:      getEnv("API_URL", constants.APIConfig.WikipediaBaseURL),
			UserAgent:   getEnv("USER_AGENT", constants.APIConfig.UserAgent),
			HTTPTimeout: getEnvSeconds("HTTP_TIMEOUT_SECONDS", constants.APIConfig.HTTPTimeout),
		},
		Resolver: ResolverConfig{
			SearchLimit:      getEnvInt("SEARCH_LIMIT", constants.ResolverDefaults.SearchLimit),
			SummarySentences: getEnvInt("SUMMARY_SENTENCES", constants.ResolverDefaults.SummarySentences),
			CallTimeout:      getEnvSeconds("CALL_TIMEOUT_SECONDS", constants.APIConfig.CallTimeout),
			MaxAmbiguity:     getEnvInt("MAX_AMBIGUITY_OPTIONS", constants.ResolverDefaults.MaxAmbiguity),
			MaxRelated:       getEnvInt("MAX_RELATED_TOPICS", constants.ResolverDefaults.MaxRelated),
		},
		Relay: RelayConfig{
			BaseURL:              strings.TrimRight(getEnv("RELAY_BASE_URL", "http://localhost:3000"), "/"),
			WSURL:                getEnv("RELAY_WS_URL", "ws://localhost:3000/ws"),
			MaxReconnectAttempts: getEnvInt("RELAY_MAX_RECONNECT", 5),
			ReconnectDelay:       getEnvSeconds("RELAY_RECONNECT_DELAY_SECONDS", 5*time.Second),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "warn"),
			File:  getEnv("LOG_FILE", ""),
		},
		Bot: BotConfig{
			Prefix: getEnvRaw("BOT_PREFIX", "!wiki "),
		},
	}
}

func (c *Config) Validate() error {
	if c.Wiki.APIURL == "" {
		return errors.NewValidationError("API_URL is required", "API_URL", c.Wiki.APIURL)
	}
	if u, err := url.Parse(c.Wiki.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewValidationError("API_URL must be an absolute URL", "API_URL", c.Wiki.APIURL)
	}
	if c.Resolver.SearchLimit < 1 || c.Resolver.SearchLimit > 50 {
		return errors.NewValidationError("SEARCH_LIMIT must be between 1 and 50", "SEARCH_LIMIT", c.Resolver.SearchLimit)
	}
	if c.Resolver.SummarySentences < 1 {
		return errors.NewValidationError("SUMMARY_SENTENCES must be positive", "SUMMARY_SENTENCES", c.Resolver.SummarySentences)
	}
	if c.Resolver.CallTimeout <= 0 {
		return errors.NewValidationError("CALL_TIMEOUT_SECONDS must be positive", "CALL_TIMEOUT_SECONDS", c.Resolver.CallTimeout)
	}
	if c.Resolver.MaxAmbiguity < 1 {
		return errors.NewValidationError("MAX_AMBIGUITY_OPTIONS must be positive", "MAX_AMBIGUITY_OPTIONS", c.Resolver.MaxAmbiguity)
	}
	if c.Resolver.MaxRelated < 0 {
		return errors.NewValidationError("MAX_RELATED_TOPICS must not be negative", "MAX_RELATED_TOPICS", c.Resolver.MaxRelated)
	}
	if strings.TrimSpace(c.Bot.Prefix) == "" {
		return errors.NewValidationError("BOT_PREFIX is required", "BOT_PREFIX", c.Bot.Prefix)
	}
	return nil
}

// ValidateRelay checks the settings only relay mode needs.
func (c *Config) ValidateRelay() error {
	if c.Relay.BaseURL == "" {
		return errors.NewValidationError("RELAY_BASE_URL is required", "RELAY_BASE_URL", c.Relay.BaseURL)
	}
	if c.Relay.WSURL == "" {
		return errors.NewValidationError("RELAY_WS_URL is required", "RELAY_WS_URL", c.Relay.WSURL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRaw keeps surrounding whitespace, which matters for prefixes like "!wiki ".
func getEnvRaw(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return time.Duration(seconds * float64(time.Second))
		}
	}
	return defaultValue
}
