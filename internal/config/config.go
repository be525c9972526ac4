// Package config loads pingdns configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// RootServer is the root name server hint used to bootstrap recursive
	// resolution. Defaults to a.root-servers.net.
	RootServer string `koanf:"root_server" validate:"required,hostname_port"`

	// PublicResolver is the recursive resolver tried before walking the
	// delegation hierarchy ourselves.
	PublicResolver string `koanf:"public_resolver" validate:"required,hostname_port"`

	// TimeoutMS bounds each UDP query/response exchange.
	TimeoutMS uint `koanf:"timeout_ms" validate:"required,gte=100,lte=60000"`

	// MaxIterations caps delegation hops within a single resolution walk.
	MaxIterations uint `koanf:"max_iterations" validate:"required,gte=1,lte=64"`

	// MaxDepth caps nested nameserver resolutions.
	MaxDepth uint `koanf:"max_depth" validate:"required,gte=1,lte=16"`

	// CacheSize bounds the resolved-address memo in the hostaddr facade.
	CacheSize uint `koanf:"cache_size" validate:"required,gte=1"`

	// PingCount is the number of echo probes sent per resolved host.
	PingCount uint `koanf:"ping_count" validate:"required,gte=1,lte=1000"`

	// PingIntervalMS is the delay between consecutive echo probes.
	PingIntervalMS uint `koanf:"ping_interval_ms" validate:"required,gte=10,lte=60000"`

	// PingSize is the echo payload size in bytes.
	PingSize uint `koanf:"ping_size" validate:"gte=0,lte=1400"`
}

// Timeout returns the per-exchange timeout as a duration.
func (c *AppConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// PingInterval returns the probe interval as a duration.
func (c *AppConfig) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalMS) * time.Millisecond
}

// envLoader loads environment variables with the prefix "PINGDNS_",
// lowercasing keys and stripping the prefix. Swappable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "PINGDNS_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "PINGDNS_")), value
		},
	}), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Defaults first, environment on top.
	k.Load(structs.Provider(AppConfig{
		Env:            "prod",
		LogLevel:       "info",
		RootServer:     "198.41.0.4:53",
		PublicResolver: "8.8.8.8:53",
		TimeoutMS:      5000,
		MaxIterations:  16,
		MaxDepth:       4,
		CacheSize:      128,
		PingCount:      4,
		PingIntervalMS: 1000,
		PingSize:       32,
	}, "koanf"), nil)

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
