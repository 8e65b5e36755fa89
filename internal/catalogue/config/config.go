package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/redis/go-redis/v9"
)

// Config holds catalogue module settings loaded from the environment.
type Config struct {
	MongoDBURI   string `env:"MONGODB_URI,required"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"curiovault"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxImageBytes int64  `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	// ActivityCap bounds each user's feed length.
	ActivityCap int `env:"ACTIVITY_CAP" envDefault:"100"`
}

// LoadConfig reads catalogue configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue config: %w", err)
	}
	if cfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_BYTES must be positive")
	}
	if cfg.ActivityCap <= 0 {
		return nil, fmt.Errorf("ACTIVITY_CAP must be positive")
	}
	return cfg, nil
}

// NewRedisClient builds a Redis client from the catalogue configuration.
func NewRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,

		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,

		ConnMaxIdleTime: 30 * time.Minute,
		ConnMaxLifetime: time.Hour,
	})
}
