package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type MySQL struct {
	User         string
	Password     string
	Host         string
	Port         string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
}

type Server struct {
	Port          string
	MySQL         MySQL
	RedisHost     string
	RabbitMQURL   string
	Exchange      string
	JWTSecret     string
	SessionTTL    time.Duration
	ExportDir     string
	PublicBaseURL string
	LogMode       string
	LogFile       string
}

type Client struct {
	APIURL   string
	Timeout  time.Duration
	Email    string
	Password string
	LogMode  string
}

// loadDotEnv reads .env outside production; a missing file is not an error.
func loadDotEnv() {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}
}

func LoadServer() (*Server, error) {
	loadDotEnv()
	ttl, err := duration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg := &Server{
		Port: env("PORT", "8080"),
		MySQL: MySQL{
			User:         os.Getenv("MYSQL_USER"),
			Password:     os.Getenv("MYSQL_PASSWORD"),
			Host:         env("MYSQL_HOST", "localhost"),
			Port:         env("MYSQL_PORT", "3306"),
			Database:     os.Getenv("MYSQL_DATABASE"),
			MaxOpenConns: number("MYSQL_MAX_OPEN_CONNS", 100),
			MaxIdleConns: number("MYSQL_MAX_IDLE_CONNS", 20),
		},
		RedisHost:     env("REDIS_HOST", "localhost"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		Exchange:      env("RABBITMQ_EXCHANGE", "comanda.exchange"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    ttl,
		ExportDir:     env("EXPORT_DIR", "exports"),
		PublicBaseURL: env("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogMode:       env("LOG_MODE", "development"),
		LogFile:       os.Getenv("LOG_FILE"),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.MySQL.Database == "" {
		return nil, errors.New("MYSQL_DATABASE is required")
	}
	return cfg, nil
}

func LoadClient() (*Client, error) {
	loadDotEnv()
	timeout, err := duration("COMANDA_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	return &Client{
		APIURL:   env("COMANDA_API_URL", "http://localhost:8080"),
		Timeout:  timeout,
		Email:    os.Getenv("COMANDA_EMAIL"),
		Password: os.Getenv("COMANDA_PASSWORD"),
		LogMode:  env("LOG_MODE", "development"),
	}, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func number(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}
