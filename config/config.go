package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string `env:"ENV"          envDefault:"local" validate:"required,oneof=local staging production"`
	Port        string `env:"PORT"         envDefault:"8080"  validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	JWTSecret  string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL     time.Duration `env:"JWT_TTL"     envDefault:"1h" validate:"min=1m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`

	// OrgDomain is the email domain the first two accounts (admin, manager) must use.
	OrgDomain        string        `env:"ORG_DOMAIN"         envDefault:"quadranttechnologies.com" validate:"required,fqdn"`
	OTPTTL           time.Duration `env:"OTP_TTL"            envDefault:"10m"       validate:"min=1m"`
	OTPSweepSchedule string        `env:"OTP_SWEEP_SCHEDULE" envDefault:"@every 1m" validate:"required"`
	// ExposeOTP returns issued codes in API responses. Development only.
	ExposeOTP bool `env:"EXPOSE_OTP" envDefault:"false" validate:"excluded_if=Env production"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"log" validate:"oneof=log resend smtp"`
	ResendAPIKey  string `env:"RESEND_API_KEY" validate:"required_if=EmailProvider resend"`
	ResendFrom    string `env:"RESEND_FROM"    validate:"required_if=EmailProvider resend"`
	SMTPHost      string `env:"SMTP_HOST"      validate:"required_if=EmailProvider smtp"`
	SMTPPort      int    `env:"SMTP_PORT"      envDefault:"587" validate:"min=1,max=65535"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	SMTPFrom      string `env:"SMTP_FROM"      validate:"required_if=EmailProvider smtp"`
	AppBaseURL    string `env:"APP_BASE_URL"   envDefault:"http://localhost:8080" validate:"url"`

	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS"       envDefault:"1" validate:"gt=0"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST"     envDefault:"5" validate:"min=1"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
