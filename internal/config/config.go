// Package config resolves startup configuration. Precedence: compiled
// defaults, then a .env file if present, then real environment variables;
// command-line flags defined in main override the result. Nothing here is
// mutable at runtime.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Host     string // game listener bind address
	Port     int    // game listener port
	HTTPAddr string // websocket/stats/metrics listener, empty disables
	Bots     int    // bot roster size created on first human connect
	BotLevel int    // bot difficulty 0-9
	LogLevel string
	LogJSON  bool
}

func defaults() Config {
	return Config{
		Host:     "0.0.0.0",
		Port:     5555,
		HTTPAddr: ":8080",
		Bots:     3,
		BotLevel: 5,
		LogLevel: "info",
	}
}

// Load reads .env (if any) and the environment on top of the defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaults()
	if v := os.Getenv("SNAKE_HOST"); v != "" {
		cfg.Host = v
	}
	if v, ok := envInt("SNAKE_PORT"); ok {
		cfg.Port = v
	}
	if v, set := os.LookupEnv("SNAKE_HTTP_ADDR"); set {
		cfg.HTTPAddr = v
	}
	if v, ok := envInt("SNAKE_BOTS"); ok {
		cfg.Bots = v
	}
	if v, ok := envInt("SNAKE_BOT_LEVEL"); ok {
		cfg.BotLevel = clampLevel(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogJSON = os.Getenv("LOG_FORMAT") == "json"
	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 9 {
		return 9
	}
	return v
}
