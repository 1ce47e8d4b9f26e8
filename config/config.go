package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	App    AppConfig
	Neynar NeynarConfig
	Limits LimitsConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// RedisConfig describes the key-value store. An empty URL selects the
// in-memory stores.
type RedisConfig struct {
	URL         string
	Token       string
	DialTimeout time.Duration
	PingTimeout time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	URL         string
	Name        string
}

type NeynarConfig struct {
	APIKey  string
	BaseURL string
}

type LimitsConfig struct {
	SubmitPerMinute   int
	SubmitBurst       int
	NotifyConcurrency int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", ""),
			Token:       getEnv("REDIS_TOKEN", ""),
			DialTimeout: getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			PingTimeout: getEnvAsDuration("REDIS_PING_TIMEOUT", 2*time.Second),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			URL:         strings.TrimRight(getEnv("APP_URL", "https://my-first-mini-app.vercel.app"), "/"),
			Name:        getEnv("APP_NAME", "minikit"),
		},
		Neynar: NeynarConfig{
			APIKey:  getEnv("NEYNAR_API_KEY", ""),
			BaseURL: strings.TrimRight(getEnv("NEYNAR_BASE_URL", "https://api.neynar.com"), "/"),
		},
		Limits: LimitsConfig{
			SubmitPerMinute:   getEnvAsInt("SUBMIT_RATE_PER_MINUTE", 10),
			SubmitBurst:       getEnvAsInt("SUBMIT_RATE_BURST", 5),
			NotifyConcurrency: getEnvAsInt("NOTIFY_CONCURRENCY", 8),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Redis.URL != "" {
		if _, err := redis.ParseURL(c.Redis.URL); err != nil {
			return fmt.Errorf("REDIS_URL is invalid: %w", err)
		}
	}

	if c.App.Name == "" {
		return fmt.Errorf("APP_NAME is required")
	}

	if c.Limits.SubmitPerMinute <= 0 || c.Limits.SubmitBurst <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_MINUTE and SUBMIT_RATE_BURST must be positive")
	}

	if c.Limits.NotifyConcurrency <= 0 {
		return fmt.Errorf("NOTIFY_CONCURRENCY must be positive")
	}

	return nil
}

// UseRedis reports whether a key-value store is configured.
func (c *Config) UseRedis() bool {
	return c.Redis.URL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
