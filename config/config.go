// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// AIConfig selects the text-generation backend. An empty APIKey disables it.
type AIConfig struct {
	Provider string
	APIKey   string
	Models   []string
	BaseURL  string
	Timeout  time.Duration
}

type DBConfig struct {
	Enabled      bool
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type TelegramConfig struct {
	Token string
	Debug bool
}

type LogConfig struct {
	Level       string
	Development bool
}

type CleanupConfig struct {
	Interval      time.Duration
	RetentionDays int
}

type Config struct {
	Server          ServerConfig
	AI              AIConfig
	DB              DBConfig
	Redis           RedisConfig
	Telegram        TelegramConfig
	Log             LogConfig
	Cleanup         CleanupConfig
	ShutdownTimeout time.Duration
}

// Load reads config.{yaml,json} and falls back to environment variables
// when no file is found. A .env file is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	// The file type comes from the extension: config.yaml or config.json.
	v.SetConfigName("config")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("$HOME/.diet-calculator")

	v.SetDefault("ShutdownTimeout", 10*time.Second)
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("Server.ReadTimeout", 10*time.Second)
	v.SetDefault("Server.WriteTimeout", 60*time.Second)
	v.SetDefault("Server.IdleTimeout", 120*time.Second)
	v.SetDefault("Server.AllowedOrigins", []string{"*"})
	v.SetDefault("AI.Provider", "huggingface")
	v.SetDefault("AI.Timeout", 30*time.Second)
	v.SetDefault("DB.MaxOpenConns", 20)
	v.SetDefault("DB.MaxIdleConns", 10)
	v.SetDefault("DB.ConnLifetime", 5*time.Minute)
	v.SetDefault("Redis.TTL", time.Hour)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Cleanup.Interval", 24*time.Hour)
	v.SetDefault("Cleanup.RetentionDays", 90)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fromEnv(), nil
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	// Expand ${ENV_VAR} values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			v.Set(key, os.Getenv(envVar))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func fromEnv() *Config {
	cfg := &Config{}

	cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second)
	cfg.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second)
	cfg.Server.IdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second)
	cfg.Server.AllowedOrigins = splitList(getEnvOr("CORS_ALLOWED_ORIGINS", "*"))

	cfg.AI.Provider = getEnvOr("AI_PROVIDER", "huggingface")
	cfg.AI.APIKey = os.Getenv("HUGGINGFACE_API_KEY")
	if cfg.AI.Provider == "openai" {
		cfg.AI.APIKey = getEnvOr("OPENAI_API_KEY", os.Getenv("GPT_API_KEY"))
	}
	cfg.AI.Models = splitList(os.Getenv("AI_MODELS"))
	cfg.AI.BaseURL = os.Getenv("AI_BASE_URL")
	cfg.AI.Timeout = getEnvDuration("AI_TIMEOUT", 30*time.Second)

	cfg.DB.Enabled = getEnvBool("DB_ENABLED", false)
	cfg.DB.Host = getEnvOr("DB_HOST", "localhost")
	cfg.DB.Port = getEnvOr("DB_PORT", "5432")
	cfg.DB.User = getEnvOr("DB_USER", "postgres")
	cfg.DB.Password = getEnvOr("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnvOr("DB_NAME", "diet_calculator")
	cfg.DB.SSLMode = getEnvOr("DB_SSL_MODE", "disable")
	cfg.DB.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 20)
	cfg.DB.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 10)
	cfg.DB.ConnLifetime = getEnvDuration("DB_CONN_LIFETIME", 5*time.Minute)

	cfg.Redis.Enabled = getEnvBool("REDIS_ENABLED", false)
	cfg.Redis.Addr = getEnvOr("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)
	cfg.Redis.TTL = getEnvDuration("REDIS_TTL", time.Hour)

	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.Telegram.Debug = getEnvBool("TELEGRAM_DEBUG", false)

	cfg.Log.Level = getEnvOr("LOG_LEVEL", "info")
	cfg.Log.Development = getEnvBool("LOG_DEVELOPMENT", false)

	cfg.Cleanup.Interval = getEnvDuration("CLEANUP_INTERVAL", 24*time.Hour)
	cfg.Cleanup.RetentionDays = getEnvInt("CLEANUP_RETENTION_DAYS", 90)

	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	return cfg
}

func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
