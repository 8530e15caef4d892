package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Addr     string
	User     string
	Password string
	Name     string
}

type Config struct {
	HTTPAddr        string
	SocketAddr      string
	RedisURL        string
	DB              Database
	JWTSecret       string
	AllowedOrigins  []string
	BoardPath       string
	StartingBalance int
	DecisionTimeout time.Duration
	LogLevel        string
}

// Load reads the environment, after merging a .env file when one exists.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		HTTPAddr:   getenv("HTTP_ADDR", ":4101"),
		SocketAddr: getenv("SOCKET_ADDR", ":8000"),
		RedisURL:   getenv("REDIS_URL", "localhost:6379"),
		DB: Database{
			Addr:     getenv("DB_ADDR", "localhost:5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "speculation"),
		},
		JWTSecret:      getenv("JWT_SECRET", "secret"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		BoardPath:      getenv("BOARD_PATH", "platform/board/layout.json"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.StartingBalance, err = strconv.Atoi(getenv("STARTING_BALANCE", "400")); err != nil {
		return nil, fmt.Errorf("STARTING_BALANCE: %w", err)
	}
	if cfg.StartingBalance < 0 {
		return nil, fmt.Errorf("STARTING_BALANCE: must not be negative, got %d", cfg.StartingBalance)
	}
	if cfg.DecisionTimeout, err = time.ParseDuration(getenv("DECISION_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("DECISION_TIMEOUT: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
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
