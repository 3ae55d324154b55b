package confs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultPort           = "8080"
	defaultTokenTTL       = 7 * 24 * time.Hour
	defaultInsightTimeout = 20 * time.Second
	defaultOpenAIModel    = "gpt-4o-mini"
)

// Config is built once at startup and handed to every component that needs it.
// Nothing mutates it after LoadConfig returns.
type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// DatabaseURL takes precedence over the individual DB_* parameters.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret string
	TokenTTL  time.Duration

	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	InsightTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msg("could not load .env")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		GinMode:       os.Getenv("GIN_MODE"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		DatabaseURL:   os.Getenv("DB_URL"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", defaultOpenAIModel),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", defaultTokenTTL); err != nil {
		return nil, err
	}
	if cfg.InsightTimeout, err = getDuration("INSIGHT_TIMEOUT", defaultInsightTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("missing required configuration: JWT_SECRET")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.InsightTimeout <= 0 {
		return fmt.Errorf("INSIGHT_TIMEOUT must be positive, got %s", c.InsightTimeout)
	}
	if c.DatabaseURL == "" && (c.DBHost == "" || c.DBPort == "" || c.DBUser == "" || c.DBPassword == "" || c.DBName == "") {
		return errors.New("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
