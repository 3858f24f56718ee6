package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:":8080"`
	GrpcPort string `envconfig:"GRPC_PORT" default:":50051"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Optional backends; the in-memory variants are used when unset.
	DatabaseURL      string   `envconfig:"DATABASE_URL"`
	RedisURL         string   `envconfig:"REDIS_URL"`
	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS"`
	OrderEventsTopic string   `envconfig:"ORDER_EVENTS_TOPIC" default:"storefront.orders"`
	GeminiAPIKey     string   `envconfig:"GEMINI_API_KEY"`
	GeminiModel      string   `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	ChatTimeout   time.Duration `envconfig:"CHAT_TIMEOUT" default:"30s"`
	CheckoutDelay time.Duration `envconfig:"CHECKOUT_DELAY" default:"2s"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@gabinork.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

var (
	config Config
	once   sync.Once
)

// Load reads the environment into a fresh Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if cfg.CheckoutDelay < 0 {
		return nil, fmt.Errorf("invalid CHECKOUT_DELAY %s: must be non-negative", cfg.CheckoutDelay)
	}
	if cfg.ChatTimeout <= 0 {
		return nil, fmt.Errorf("invalid CHAT_TIMEOUT %s: must be positive", cfg.ChatTimeout)
	}
	return &cfg, nil
}

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := Load()
		if err != nil {
			logger.Fatalf("Configuration error: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s", config.HTTPPort, config.GrpcPort, config.LogLevel)
		logger.WithFields(logrus.Fields{
			"database": config.DatabaseURL != "",
			"redis":    config.RedisURL != "",
			"kafka":    len(config.KafkaBrokers) > 0,
			"gemini":   config.GeminiAPIKey != "",
		}).Info("Configuration loaded: optional backends")
	})
	return &config
}
