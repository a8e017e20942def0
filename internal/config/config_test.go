package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Host != "0.0.0.0" || cfg.Port != 5555 {
		t.Fatalf("default bind = %s:%d, want 0.0.0.0:5555", cfg.Host, cfg.Port)
	}
	if cfg.Bots != 3 || cfg.BotLevel != 5 {
		t.Fatalf("default bots = %d level %d, want 3 level 5", cfg.Bots, cfg.BotLevel)
	}
	if cfg.HTTPAddr != ":8080" || cfg.LogLevel != "info" || cfg.LogJSON {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SNAKE_HOST", "127.0.0.1")
	t.Setenv("SNAKE_PORT", "6000")
	t.Setenv("SNAKE_BOTS", "8")
	t.Setenv("SNAKE_BOT_LEVEL", "15") // clamped
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()
	if cfg.Host != "127.0.0.1" || cfg.Port != 6000 {
		t.Fatalf("bind = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Bots != 8 || cfg.BotLevel != 9 {
		t.Fatalf("bots = %d level %d, want 8 level 9", cfg.Bots, cfg.BotLevel)
	}
	if cfg.LogLevel != "debug" || !cfg.LogJSON {
		t.Fatalf("log config = %s json=%v", cfg.LogLevel, cfg.LogJSON)
	}
}

func TestEmptyHTTPAddrDisables(t *testing.T) {
	t.Setenv("SNAKE_HTTP_ADDR", "")
	if cfg := Load(); cfg.HTTPAddr != "" {
		t.Fatalf("http addr = %q, want empty (disabled)", cfg.HTTPAddr)
	}
}

func TestBadIntFallsBack(t *testing.T) {
	t.Setenv("SNAKE_PORT", "not-a-port")
	if cfg := Load(); cfg.Port != 5555 {
		t.Fatalf("port = %d, want default 5555", cfg.Port)
	}
}
