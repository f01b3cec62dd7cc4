// README: Config loader; reads .env when present, then env vars with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AIConfig struct {
	Provider      string
	GeminiKey     string
	GeminiModel   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
		RatePerMin  int
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	AI AIConfig
	// CacheTTL of zero disables the generation cache.
	CacheTTL time.Duration
	// QuotaMonthly of zero disables the quota check.
	QuotaMonthly int
	SessionIdle  time.Duration
	Maps         struct {
		APIKey string
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set are not overridden.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv is Load without the .env step.
func FromEnv() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGE_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = envList("VOYAGE_CORS_ORIGINS", []string{"http://localhost:5173"})
	cfg.HTTP.RatePerMin = envOrDefaultInt("VOYAGE_RATE_PER_MIN", 30)
	cfg.DB.DSN = os.Getenv("VOYAGE_DB_DSN")
	cfg.Redis.Addr = os.Getenv("VOYAGE_REDIS_ADDR")

	cfg.AI.Provider = strings.ToLower(envOrDefault("VOYAGE_AI_PROVIDER", ProviderGemini))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GeminiModel = envOrDefault("VOYAGE_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = envOrDefault("VOYAGE_OPENAI_MODEL", "gpt-4o-2024-08-06")
	cfg.AI.OpenAIBaseURL = envOrDefault("VOYAGE_OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.AI.Timeout = time.Duration(envOrDefaultInt("VOYAGE_AI_TIMEOUT_SEC", 60)) * time.Second

	cfg.CacheTTL = time.Duration(envOrDefaultInt("VOYAGE_CACHE_TTL_MIN", 60)) * time.Minute
	cfg.QuotaMonthly = envOrDefaultInt("VOYAGE_QUOTA_MONTHLY", 100)
	cfg.SessionIdle = time.Duration(envOrDefaultInt("VOYAGE_SESSION_IDLE_MIN", 30)) * time.Minute
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	switch cfg.AI.Provider {
	case ProviderGemini:
		if cfg.AI.GeminiKey == "" {
			return cfg, errors.New("GEMINI_API_KEY is required when VOYAGE_AI_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if cfg.AI.OpenAIKey == "" {
			return cfg, errors.New("OPENAI_API_KEY is required when VOYAGE_AI_PROVIDER=openai")
		}
	default:
		return cfg, fmt.Errorf("unknown VOYAGE_AI_PROVIDER %q", cfg.AI.Provider)
	}
	if cfg.AI.Timeout <= 0 {
		return cfg, errors.New("VOYAGE_AI_TIMEOUT_SEC must be positive")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
