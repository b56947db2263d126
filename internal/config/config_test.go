package config

import (
	"testing"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.EABaseURL != "https://proclubs.ea.com/api/fc" {
		t.Fatalf("unexpected EABaseURL: %q", cfg.EABaseURL)
	}
	if cfg.RateLimitMax != 60 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("unexpected rate limit defaults: %d/%s", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: %v/%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if !cfg.EACircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ProdRequiresDiscordCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("DISCORD_CLIENT_ID", "")
	t.Setenv("DISCORD_CLIENT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without discord credentials")
	}
}

func TestLoad_RateLimitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RATE_LIMIT_MAX", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for RATE_LIMIT_MAX=0")
	}
}

func TestLoad_EATimeoutValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("EA_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid EA_TIMEOUT")
	}
}

func TestLoad_OverridesApplied(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("APP_HTTP_ADDR", ":9090")
	t.Setenv("EA_RELAY_URL", "https://relay.example.com/proxy")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("WARM_FOLLOWS_WORKERS", "8")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.EARelayURL != "https://relay.example.com/proxy" {
		t.Fatalf("unexpected EARelayURL: %q", cfg.EARelayURL)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected SessionTTL: %s", cfg.SessionTTL)
	}
	if cfg.WarmFollowsWorkers != 8 {
		t.Fatalf("unexpected WarmFollowsWorkers: %d", cfg.WarmFollowsWorkers)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}
