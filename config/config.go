package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret signs session tokens, overridden by JWT_SECRET
var JWTSecret = []byte("luxeplate_super_secret_2024")

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	DBDriver        string // sqlite or postgres
	DBDSN           string
	GeminiAPIKey    string
	AdminPassword   string
	StripeSecretKey string
	AMQPURL         string
	Currency        string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	JWTSecret = []byte(getEnv("JWT_SECRET", string(JWTSecret)))

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         os.Getenv("GIN_MODE"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBDSN:           getEnv("DB_DSN", "luxeplate.db"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		Currency:        getEnv("CURRENCY", "GBP"),
	}
}

// InitLogger configures the process-wide logrus logger
func InitLogger(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.GinMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// OpenDB connects the gorm handle backing the record store
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logrus.WithField("driver", cfg.DBDriver).Info("database connected")
	return db, nil
}
