package app

import (
	"testing"
	"time"

	"github.com/neatway/proclubs-stats-sub000/internal/config"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
)

func memoryModeConfig() config.Config {
	return config.Config{
		HTTPAddr:           ":0",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       10 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		RateLimitMax:       30,
		RateLimitWindow:    time.Minute,
		EATimeout:          5 * time.Second,
		DiscordTimeout:     5 * time.Second,
		SessionTTL:         time.Hour,
		WarmFollowsWorkers: 2,
	}
}

func TestNewHTTPServer_MemoryMode(t *testing.T) {
	t.Parallel()

	srv, cleanup, err := NewHTTPServer(memoryModeConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewHTTPServer: %v", err)
	}
	defer cleanup()

	if srv == nil || srv.Handler == nil {
		t.Fatal("expected a wired http server")
	}
	if srv.ReadTimeout != 5*time.Second || srv.WriteTimeout != 10*time.Second {
		t.Fatalf("timeouts not applied: read=%s write=%s", srv.ReadTimeout, srv.WriteTimeout)
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryModeConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for empty addr")
	}
}

func TestNewHTTPServer_RejectsBadRelayURL(t *testing.T) {
	t.Parallel()

	cfg := memoryModeConfig()
	cfg.EARelayURL = "not a url"
	if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for invalid relay url")
	}
}
