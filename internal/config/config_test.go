package config

import (
	"errors"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info, got %q", cfg.LogLevel)
	}
	if cfg.RootServer != "198.41.0.4:53" {
		t.Errorf("expected RootServer=198.41.0.4:53, got %q", cfg.RootServer)
	}
	if cfg.PublicResolver != "8.8.8.8:53" {
		t.Errorf("expected PublicResolver=8.8.8.8:53, got %q", cfg.PublicResolver)
	}
	if cfg.TimeoutMS != 5000 {
		t.Errorf("expected TimeoutMS=5000, got %d", cfg.TimeoutMS)
	}
	if cfg.MaxIterations != 16 {
		t.Errorf("expected MaxIterations=16, got %d", cfg.MaxIterations)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("expected MaxDepth=4, got %d", cfg.MaxDepth)
	}
	if cfg.CacheSize != 128 {
		t.Errorf("expected CacheSize=128, got %d", cfg.CacheSize)
	}
	if cfg.PingCount != 4 {
		t.Errorf("expected PingCount=4, got %d", cfg.PingCount)
	}
	if cfg.PingIntervalMS != 1000 {
		t.Errorf("expected PingIntervalMS=1000, got %d", cfg.PingIntervalMS)
	}
	if cfg.PingSize != 32 {
		t.Errorf("expected PingSize=32, got %d", cfg.PingSize)
	}
}

func TestLoad_ValidOverrides(t *testing.T) {
	t.Setenv("PINGDNS_ENV", "dev")
	t.Setenv("PINGDNS_LOG_LEVEL", "debug")
	t.Setenv("PINGDNS_ROOT_SERVER", "192.0.2.1:53")
	t.Setenv("PINGDNS_PUBLIC_RESOLVER", "1.1.1.1:53")
	t.Setenv("PINGDNS_TIMEOUT_MS", "2500")
	t.Setenv("PINGDNS_MAX_ITERATIONS", "32")
	t.Setenv("PINGDNS_MAX_DEPTH", "8")
	t.Setenv("PINGDNS_PING_COUNT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("expected Env=dev, got %q", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %q", cfg.LogLevel)
	}
	if cfg.RootServer != "192.0.2.1:53" {
		t.Errorf("expected RootServer=192.0.2.1:53, got %q", cfg.RootServer)
	}
	if cfg.PublicResolver != "1.1.1.1:53" {
		t.Errorf("expected PublicResolver=1.1.1.1:53, got %q", cfg.PublicResolver)
	}
	if cfg.Timeout() != 2500*time.Millisecond {
		t.Errorf("expected Timeout()=2.5s, got %v", cfg.Timeout())
	}
	if cfg.MaxIterations != 32 {
		t.Errorf("expected MaxIterations=32, got %d", cfg.MaxIterations)
	}
	if cfg.MaxDepth != 8 {
		t.Errorf("expected MaxDepth=8, got %d", cfg.MaxDepth)
	}
	if cfg.PingCount != 10 {
		t.Errorf("expected PingCount=10, got %d", cfg.PingCount)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "PINGDNS_ENV", "staging"},
		{"bad log level", "PINGDNS_LOG_LEVEL", "loud"},
		{"root server missing port", "PINGDNS_ROOT_SERVER", "198.41.0.4"},
		{"timeout too small", "PINGDNS_TIMEOUT_MS", "1"},
		{"zero iterations", "PINGDNS_MAX_ITERATIONS", "0"},
		{"depth too large", "PINGDNS_MAX_DEPTH", "100"},
		{"zero ping count", "PINGDNS_PING_COUNT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected Load() to fail with %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_EnvLoaderError(t *testing.T) {
	orig := envLoader
	defer func() { envLoader = orig }()

	envLoader = func(k *koanf.Koanf) error {
		return errors.New("boom")
	}

	if _, err := Load(); err == nil {
		t.Error("expected Load() to surface env loader error")
	}
}
