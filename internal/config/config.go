package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
	DriverMemory   = "memory"
)

// DefaultSentimentURL is the Hugging Face inference endpoint used when none is configured
const DefaultSentimentURL = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest"

const minJWTSecretLen = 32

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// IsDevelopment reports whether the server runs in the development environment
func (s ServerConfig) IsDevelopment() bool {
	return s.Env == "" || s.Env == "development"
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// StorageConfig selects the persistence driver and the lookback windows the
// dashboard reads with
type StorageConfig struct {
	Driver              string `mapstructure:"driver"`
	DatabaseURL         string `mapstructure:"database_url"`
	MaxConns            int32  `mapstructure:"max_conns"`
	StreakLookbackDays  int    `mapstructure:"streak_lookback_days"`
	InsightWindowDays   int    `mapstructure:"insight_window_days"`
	DashboardWindowDays int    `mapstructure:"dashboard_window_days"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SentimentConfig configures the external note classifier. An empty APIKey
// switches to the local keyword heuristic.
type SentimentConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	RequestsPerMinute     int `mapstructure:"requests_per_minute"`
	AuthRequestsPerMinute int `mapstructure:"auth_requests_per_minute"`
}

// Load reads configuration from a .env file, environment variables and an
// optional config.yaml, in that order of precedence after explicit env vars
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VIBECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing deployments
	legacy := map[string]string{
		"server.port":          "PORT",
		"storage.database_url": "DATABASE_URL",
		"auth.jwt_secret":      "JWT_SECRET",
		"sentiment.api_key":    "HUGGING_FACE_API_KEY",
		"supabase.url":         "SUPABASE_URL",
		"supabase.service_key": "SUPABASE_SERVICE_KEY",
		"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
	}
	for key, env := range legacy {
		if err := v.BindEnv(key, "VIBECHECK_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.CORS.AllowedOrigins = splitOrigins(config.CORS.AllowedOrigins)

	if config.Auth.JWTSecret == "" && config.Server.IsDevelopment() {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		config.Auth.JWTSecret = secret
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", "slog")

	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.max_conns", 10)
	v.SetDefault("storage.streak_lookback_days", 30)
	v.SetDefault("storage.insight_window_days", 14)
	v.SetDefault("storage.dashboard_window_days", 7)

	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("sentiment.url", DefaultSentimentURL)
	v.SetDefault("sentiment.timeout", 10*time.Second)

	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("rate_limit.auth_requests_per_minute", 10)
}

// randomSecret generates a per-process signing key so development runs work
// without configuration. Tokens do not survive a restart.
func randomSecret() (string, error) {
	b := make([]byte, minJWTSecretLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// splitOrigins expands comma separated entries, which is how env vars arrive
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the supabase driver")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required for the supabase driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if !c.Server.IsDevelopment() && len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minJWTSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	if c.Storage.StreakLookbackDays <= 0 || c.Storage.InsightWindowDays <= 0 || c.Storage.DashboardWindowDays <= 0 {
		return fmt.Errorf("storage lookback windows must be positive")
	}
	return nil
}
