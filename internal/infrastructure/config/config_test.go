package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env development, got %q", cfg.Env)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token TTL 24h, got %v", cfg.TokenTTL)
	}
	if cfg.AuditWorkers != 4 {
		t.Fatalf("expected 4 audit workers, got %d", cfg.AuditWorkers)
	}
	if cfg.Mongo.Database != "university_admin" {
		t.Fatalf("expected default database, got %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("expected default redis addr, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.Timeout != 5*time.Second {
		t.Fatalf("expected default redis timeout 5s, got %v", cfg.Redis.Timeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_TIMEOUT", "2s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected overridden port, got %q", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token TTL, got %v", cfg.TokenTTL)
	}
	if cfg.Redis.Addr != "cache:6380" || cfg.Redis.Password != "hunter2" || cfg.Redis.DB != 3 {
		t.Fatalf("redis overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Redis.Timeout != 2*time.Second {
		t.Fatalf("expected 2s redis timeout, got %v", cfg.Redis.Timeout)
	}
}
