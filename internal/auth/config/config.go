package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module.
type Config struct {
	// MongoDB Configuration
	MongoDBURI   string `env:"MONGODB_URI,required"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"curiovault"`

	// JWT Configuration
	JWTSecretKey    string        `env:"JWT_SECRET,required"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"curiovault-auth"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	AdminTokenTTL   time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"30m"`

	// Email token lifetimes and generation cap
	VerifyTokenTTL   time.Duration `env:"VERIFY_TOKEN_TTL" envDefault:"24h"`
	ResetTokenTTL    time.Duration `env:"RESET_TOKEN_TTL" envDefault:"2h"`
	MaxTokenRequests int           `env:"MAX_TOKEN_REQUESTS" envDefault:"5"`

	// Refresh token cookie
	RefreshCookieName string `env:"REFRESH_COOKIE_NAME" envDefault:"refresh_token"`
	RefreshCookiePath string `env:"REFRESH_COOKIE_PATH" envDefault:"/api/v1/auth/refresh"`
	CookieDomain      string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure      bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieSameSite    string `env:"COOKIE_SAME_SITE" envDefault:"Lax"`

	// Admin credentials, compared in constant time at login
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:""`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`

	// Outgoing email
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
	SMTPAddr      string `env:"SMTP_ADDR" envDefault:""`
	SMTPFrom      string `env:"SMTP_FROM" envDefault:"no-reply@curiovault.local"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error())
	}

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.MongoDBURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}

	cfg.CookieSameSite = strings.Title(strings.ToLower(cfg.CookieSameSite))
	if !(cfg.CookieSameSite == "Lax" || cfg.CookieSameSite == "Strict" || cfg.CookieSameSite == "None") {
		return nil, errors.New("COOKIE_SAME_SITE must be one of 'Lax', 'Strict', or 'None'")
	}

	return cfg, nil
}
