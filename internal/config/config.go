package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every runtime setting the binaries need. It is assembled
// once in main from the environment and passed down explicitly; no package
// reads os.Getenv at use time.
type Config struct {
	Port string

	DB        DBConfig
	RedisAddr string
	Kafka     KafkaConfig

	JWTSecret string

	Assistant AssistantConfig
	Calendar  CalendarConfig
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
}

// AssistantConfig controls the optional AI enhancement layer. Enabled()
// deciding whether the enhancement is attempted at all keeps the
// deterministic engine as the only required path.
type AssistantConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func (a AssistantConfig) Enabled() bool {
	return a.APIKey != ""
}

type CalendarConfig struct {
	SuggestionLookaheadDays int
	CacheTTL                time.Duration
}

// Load builds the Config from the process environment.
func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8080"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     envOr("DB_PORT", "5432"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		Kafka: KafkaConfig{
			Broker:        os.Getenv("KAFKA_BROKER"),
			ConsumerGroup: envOr("KAFKA_CONSUMER_GROUP", "leavesync-calendar"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		Assistant: AssistantConfig{
			APIKey:  os.Getenv("ASSISTANT_API_KEY"),
			Model:   envOr("ASSISTANT_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("ASSISTANT_BASE_URL", "https://api.openai.com/v1"),
			Timeout: envDurationOr("ASSISTANT_TIMEOUT", 15*time.Second),
		},
		Calendar: CalendarConfig{
			SuggestionLookaheadDays: envIntOr("SUGGESTION_LOOKAHEAD_DAYS", 90),
			CacheTTL:                envDurationOr("CALENDAR_CACHE_TTL", 10*time.Minute),
		},
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Calendar.SuggestionLookaheadDays <= 0 {
		return Config{}, fmt.Errorf("SUGGESTION_LOOKAHEAD_DAYS must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
