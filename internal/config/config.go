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
	OTP       OTPConfig
	Payment   PaymentConfig
	SMTP      SMTPConfig
	Documents DocumentsConfig
	Eviction  EvictionConfig
	Verify    VerifyConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	PublicBaseURL         string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN selects the
// in-memory application store.
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

// OTPConfig defines one-time-code parameters.
type OTPConfig struct {
	CodeTTLMinutes int
	BcryptCost     int
}

// PaymentConfig holds payment gateway credentials and webhook secret.
type PaymentConfig struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	WebhookSecret string
	AmountPaise   int64
	Currency      string
	CallbackURL   string
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// DocumentsConfig controls where issued hall tickets are written and served.
type DocumentsConfig struct {
	Dir        string
	PublicPath string
}

// EvictionConfig controls best-effort cleanup of paid records.
type EvictionConfig struct {
	DelaySeconds int
}

// VerifyConfig defines verification token parameters.
type VerifyConfig struct {
	TokenSecret string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	amountPaise, err := strconv.ParseInt(getEnv("PAYMENT_AMOUNT_PAISE", "50000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_AMOUNT_PAISE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "hallticket-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			PublicBaseURL:         getEnv("APP_PUBLIC_BASE_URL", "http://localhost:8080"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		OTP: OTPConfig{
			CodeTTLMinutes: getEnvAsInt("OTP_CODE_TTL_MINUTES", 10),
			BcryptCost:     getEnvAsInt("OTP_BCRYPT_COST", 10),
		},
		Payment: PaymentConfig{
			BaseURL:       getEnv("PAYMENT_BASE_URL", "https://api.razorpay.com/v1"),
			KeyID:         os.Getenv("PAYMENT_KEY_ID"),
			KeySecret:     os.Getenv("PAYMENT_KEY_SECRET"),
			WebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
			AmountPaise:   amountPaise,
			Currency:      getEnv("PAYMENT_CURRENCY", "INR"),
			CallbackURL:   getEnv("PAYMENT_CALLBACK_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@example.com"),
		},
		Documents: DocumentsConfig{
			Dir:        getEnv("DOCUMENTS_DIR", "documents"),
			PublicPath: getEnv("DOCUMENTS_PUBLIC_PATH", "/documents"),
		},
		Eviction: EvictionConfig{
			DelaySeconds: getEnvAsInt("EVICTION_DELAY_SECONDS", 600),
		},
		Verify: VerifyConfig{
			TokenSecret: getEnv("VERIFY_TOKEN_SECRET", "dev-secret"),
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

// CodeTTL returns the challenge validity window.
func (o OTPConfig) CodeTTL() time.Duration {
	if o.CodeTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(o.CodeTTLMinutes) * time.Minute
}

// Delay returns the eviction delay duration.
func (e EvictionConfig) Delay() time.Duration {
	if e.DelaySeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(e.DelaySeconds) * time.Second
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
