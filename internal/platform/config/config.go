package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultAppName           = "symptom-drift"
	defaultGeminiModel       = "gemini-2.5-flash"
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	defaultHTTPClientTimeout = 20 * time.Second
	defaultPreviousWindow    = 5
	defaultMaxSymptoms       = 3
)

// Config reúne todo lo que el proceso lee del entorno.
type Config struct {
	Port  string
	DBDSN string

	LogLevel  string
	LogFormat string
	AppName   string

	// IAM: si faltan ambos, el API corre en modo dev (X-Debug-User-ID).
	IAMBaseURL string
	IAMAPIKey  string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	HTTPClientTimeout time.Duration

	PreviousScoresWindow int
	MaxSymptomsPerLog    int
}

// Load lee un .env opcional y luego las variables de entorno.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv arma la config desde una función de lookup (tests).
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:          get("PORT", defaultPort),
		DBDSN:         get("DB_DSN", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "text"),
		AppName:       get("APP_NAME", defaultAppName),
		IAMBaseURL:    get("IAM_BASE_URL", ""),
		IAMAPIKey:     get("IAM_API_KEY", ""),
		GeminiAPIKey:  get("GEMINI_API_KEY", ""),
		GeminiModel:   get("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL: get("GEMINI_BASE_URL", defaultGeminiBaseURL),
	}

	timeout, err := parseDuration(get("HTTP_CLIENT_TIMEOUT", ""), defaultHTTPClientTimeout)
	if err != nil {
		return Config{}, fmt.Errorf("HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.HTTPClientTimeout = timeout

	if cfg.PreviousScoresWindow, err = parsePositiveInt(get("PREVIOUS_SCORES_WINDOW", ""), defaultPreviousWindow); err != nil {
		return Config{}, fmt.Errorf("PREVIOUS_SCORES_WINDOW: %w", err)
	}
	if cfg.MaxSymptomsPerLog, err = parsePositiveInt(get("MAX_SYMPTOMS_PER_LOG", ""), defaultMaxSymptoms); err != nil {
		return Config{}, fmt.Errorf("MAX_SYMPTOMS_PER_LOG: %w", err)
	}

	if (cfg.IAMBaseURL == "") != (cfg.IAMAPIKey == "") {
		return Config{}, fmt.Errorf("IAM_BASE_URL and IAM_API_KEY must be set together")
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) IAMEnabled() bool {
	return c.IAMBaseURL != "" && c.IAMAPIKey != ""
}

func (c Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// parseDuration acepta "20s" o segundos enteros ("20").
func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("must be positive, got %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}

func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
