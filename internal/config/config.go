package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Generator GeneratorConfig
	Mailer    MailerConfig
	Drafts    DraftConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// GeneratorConfig configures the upstream text-generation capability.
type GeneratorConfig struct {
	APIURL         string
	APIKey         string
	Model          string
	SiteURL        string
	SiteName       string
	TimeoutSeconds int
}

// MailerConfig holds SMTP settings for complaint confirmations.
type MailerConfig struct {
	SMTPHost       string
	SMTPPort       string
	Username       string
	Password       string
	From           string
	SenderName     string
	TimeoutSeconds int
	MaxAttempts    int
	BackoffSeconds int
}

// DraftConfig controls signed draft tokens and their cache lifetime.
type DraftConfig struct {
	SigningSecret string
	TTLMinutes    int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "citizen-grievance-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Generator: GeneratorConfig{
			APIURL:         getEnv("GENERATOR_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
			APIKey:         os.Getenv("GENERATOR_API_KEY"),
			Model:          getEnv("GENERATOR_MODEL", "deepseek/deepseek-r1:free"),
			SiteURL:        os.Getenv("GENERATOR_SITE_URL"),
			SiteName:       os.Getenv("GENERATOR_SITE_NAME"),
			TimeoutSeconds: getEnvAsInt("GENERATOR_TIMEOUT_SECONDS", 45),
		},
		Mailer: MailerConfig{
			SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:       getEnv("SMTP_PORT", "587"),
			Username:       os.Getenv("SMTP_USERNAME"),
			Password:       os.Getenv("SMTP_PASSWORD"),
			From:           getEnv("MAIL_FROM", "noreply@example.com"),
			SenderName:     getEnv("MAIL_SENDER_NAME", "Citizen Grievance Portal"),
			TimeoutSeconds: getEnvAsInt("MAIL_TIMEOUT_SECONDS", 15),
			MaxAttempts:    getEnvAsInt("MAIL_MAX_ATTEMPTS", 3),
			BackoffSeconds: getEnvAsInt("MAIL_BACKOFF_SECONDS", 5),
		},
		Drafts: DraftConfig{
			SigningSecret: getEnv("DRAFT_SIGNING_SECRET", "dev-draft-secret"),
			TTLMinutes:    getEnvAsInt("DRAFT_TTL_MINUTES", 30),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream call timeout.
func (g GeneratorConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 45 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// Timeout returns the per-attempt send timeout.
func (m MailerConfig) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Backoff returns the base delay between send attempts.
func (m MailerConfig) Backoff() time.Duration {
	if m.BackoffSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(m.BackoffSeconds) * time.Second
}

// TTL returns the draft cache lifetime.
func (d DraftConfig) TTL() time.Duration {
	if d.TTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(d.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
