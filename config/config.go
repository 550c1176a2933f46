package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendLocal    = "local"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	ServerPort int    `yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	SessionTTL   time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"24h"`

	StorageBackend string `yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"local"`
	LocalDataPath  string `yaml:"local_data_path" env:"LOCAL_DATA_PATH" env-default:"torvix_arena_data.json"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL       string `yaml:"redis_url" env:"REDIS_URL"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:3000"`

	R2 R2Config `yaml:"r2"`

	GeminiAPIKey string `yaml:"gemini_api_key" env:"API_KEY"`
	GeminiModel  string `yaml:"gemini_model" env:"GEMINI_MODEL" env-default:"gemini-3-flash-preview"`

	SchedulerInterval  time.Duration `yaml:"scheduler_interval" env:"SCHEDULER_INTERVAL" env-default:"30s"`
	TournamentTimezone string        `yaml:"tournament_timezone" env:"TOURNAMENT_TIMEZONE" env-default:"UTC"`

	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type R2Config struct {
	AccountID       string `yaml:"account_id" env:"R2_ACCOUNT_ID"`
	AccessKeyID     string `yaml:"access_key_id" env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"R2_SECRET_ACCESS_KEY"`
	BucketName      string `yaml:"bucket_name" env:"R2_BUCKET_NAME"`
	PublicBaseURL   string `yaml:"public_base_url" env:"R2_PUBLIC_BASE_URL"`
}

func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.AccessKeyID != "" && r.SecretAccessKey != "" && r.BucketName != "" && r.PublicBaseURL != ""
}

// Load загружает конфигурацию: .env (если есть), затем YAML из CONFIG_PATH (если задан),
// переменные окружения перекрывают файл.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SchedulerInterval < time.Second {
		return fmt.Errorf("SCHEDULER_INTERVAL must be at least 1s, got %s", c.SchedulerInterval)
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case BackendLocal:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the zone tournament start dates and times are written in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TournamentTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TOURNAMENT_TIMEZONE %q: %w", c.TournamentTimezone, err)
	}
	return loc, nil
}
