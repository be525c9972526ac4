package main

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/pingdns/internal/common/clock"
	"github.com/haukened/pingdns/internal/common/log"
	"github.com/haukened/pingdns/internal/config"
	"github.com/haukened/pingdns/internal/dns/gateways/transport"
	"github.com/haukened/pingdns/internal/dns/services/hostaddr"
	"github.com/haukened/pingdns/internal/dns/services/resolver"
	"github.com/haukened/pingdns/internal/ping"
)

const (
	version = "0.1.0-dev"
	appName = "pingdns"
)

// Application holds the wired components of the tool.
type Application struct {
	config   *config.AppConfig
	hostaddr *hostaddr.Service
	pinger   *ping.Pinger
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	hosts := os.Args[1:]
	if len(hosts) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s <host> [host...]\n", appName)
		os.Exit(2)
	}

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	// Stop probing on SIGINT/SIGTERM; results gathered so far still print.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx, hosts); err != nil {
		log.Fatal(map[string]any{"error": err}, "Run failed")
	}
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := clock.RealClock{}
	logger := log.GetLogger()

	rootServer, err := netip.ParseAddrPort(cfg.RootServer)
	if err != nil {
		return nil, fmt.Errorf("invalid root server %q: %w", cfg.RootServer, err)
	}
	publicResolver, err := netip.ParseAddrPort(cfg.PublicResolver)
	if err != nil {
		return nil, fmt.Errorf("invalid public resolver %q: %w", cfg.PublicResolver, err)
	}

	udp := transport.NewUDPClient(cfg.Timeout(), logger)

	res := resolver.New(resolver.Options{
		Exchanger:     udp,
		Root:          rootServer,
		MaxIterations: cfg.MaxIterations,
		MaxDepth:      cfg.MaxDepth,
		Logger:        logger,
	})

	addrs, err := hostaddr.New(hostaddr.Options{
		Resolver: res,
		Public:   publicResolver,
		MemoSize: int(cfg.CacheSize),
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	pinger := ping.New(ping.Options{
		Count:    int(cfg.PingCount),
		Size:     int(cfg.PingSize),
		Interval: cfg.PingInterval(),
		Timeout:  cfg.Timeout(),
		Clock:    clk,
		Logger:   logger,
	})

	return &Application{
		config:   cfg,
		hostaddr: addrs,
		pinger:   pinger,
	}, nil
}

// Run resolves and pings each host in turn. A host that fails to resolve
// or probe is reported and skipped; the run only errors when every host
// failed.
func (a *Application) Run(ctx context.Context, hosts []string) error {
	failures := 0
	for _, host := range hosts {
		if ctx.Err() != nil {
			break
		}
		if err := a.pingHost(ctx, host); err != nil {
			log.Error(map[string]any{"host": host, "error": err}, "Host failed")
			fmt.Printf("%s: %v\n", host, err)
			failures++
		}
	}
	if failures == len(hosts) {
		return fmt.Errorf("all %d hosts failed", len(hosts))
	}
	return nil
}

func (a *Application) pingHost(ctx context.Context, host string) error {
	addr, err := a.hostaddr.Resolve(ctx, host)
	if err != nil {
		return err
	}

	fmt.Printf("PING %s (%s): %d data bytes\n", host, addr, a.config.PingSize)

	probes, err := a.pinger.Run(ctx, addr)
	for _, p := range probes {
		switch p.Outcome {
		case ping.OutcomeReply:
			fmt.Printf("%d bytes from %s: icmp_seq=%d time=%.3f ms\n",
				p.Size, p.From, p.Seq, float64(p.RTT.Microseconds())/1000.0)
		default:
			fmt.Printf("icmp_seq=%d %s\n", p.Seq, p.Outcome)
		}
	}
	if err != nil {
		return err
	}

	stats := ping.Summarize(probes)
	fmt.Printf("--- %s ping statistics ---\n", host)
	fmt.Printf("%d packets transmitted, %d packets received, %.1f%% packet loss\n",
		stats.Sent, stats.Received, stats.Loss*100)
	if stats.Received > 0 {
		fmt.Printf("round-trip min/avg/max = %.3f/%.3f/%.3f ms\n",
			float64(stats.Min.Microseconds())/1000.0,
			float64(stats.Avg.Microseconds())/1000.0,
			float64(stats.Max.Microseconds())/1000.0)
	}
	return nil
}
