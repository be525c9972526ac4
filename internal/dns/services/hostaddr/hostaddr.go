// Package hostaddr turns hostnames into IP addresses for the rest of the
// application. It layers the cheap paths first: IP literals parse
// locally, the operating system resolver gets one chance, then a
// one-shot query against the configured public resolver, and finally a
// full recursive walk from the root servers.
package hostaddr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/pingdns/internal/common/log"
	"github.com/haukened/pingdns/internal/common/utils"
	"github.com/haukened/pingdns/internal/dns/domain"
)

// ErrNotResolved reports that every resolution strategy failed to
// produce an address for the hostname.
var ErrNotResolved = errors.New("hostname could not be resolved")

// Resolver is the DNS lookup surface the service drives. Satisfied by
// the resolver service.
type Resolver interface {
	Lookup(ctx context.Context, name string, qtype domain.RRType, server netip.AddrPort) (domain.Message, error)
	RecursiveLookup(ctx context.Context, name string, qtype domain.RRType) (domain.Message, error)
}

// systemLookup is the OS resolver fast path, swappable in tests.
type systemLookup func(ctx context.Context, host string) ([]netip.Addr, error)

// Service resolves hostnames to addresses, memoizing final results in a
// bounded LRU keyed by canonical hostname.
type Service struct {
	resolver Resolver
	public   netip.AddrPort
	system   systemLookup
	memo     *lru.Cache[string, netip.Addr]
	logger   log.Logger
}

// Options configures a Service.
type Options struct {
	// Resolver performs DNS lookups when the fast paths fail.
	Resolver Resolver
	// Public is the public recursive resolver used for one-shot lookups.
	Public netip.AddrPort
	// MemoSize bounds the resolved-address memo.
	MemoSize int
	Logger   log.Logger
}

// New creates a hostaddr Service.
func New(opts Options) (*Service, error) {
	if opts.MemoSize <= 0 {
		opts.MemoSize = 128
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	memo, err := lru.New[string, netip.Addr](opts.MemoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create address memo: %w", err)
	}
	return &Service{
		resolver: opts.Resolver,
		public:   opts.Public,
		system:   osLookup,
		memo:     memo,
		logger:   opts.Logger,
	}, nil
}

func osLookup(ctx context.Context, host string) ([]netip.Addr, error) {
	return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
}

// Resolve returns an IP address for host. IP literals are returned
// as-is without any network traffic; resolved hostnames are memoized so
// repeated resolutions of the same host cost nothing.
func (s *Service) Resolve(ctx context.Context, host string) (netip.Addr, error) {
	host = utils.CanonicalDNSName(host)

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr, nil
	}

	if addr, ok := s.memo.Get(host); ok {
		return addr, nil
	}

	if addrs, err := s.system(ctx, host); err == nil && len(addrs) > 0 {
		s.logger.Debug(map[string]any{"host": host, "addr": addrs[0].String()}, "Resolved via OS resolver")
		s.memo.Add(host, addrs[0])
		return addrs[0], nil
	}

	// Public resolver first (A then AAAA), then a recursive walk from
	// the root servers. First success wins.
	if addr, ok := s.viaPublicResolver(ctx, host); ok {
		s.memo.Add(host, addr)
		return addr, nil
	}
	if addr, ok := s.viaRecursiveWalk(ctx, host); ok {
		s.memo.Add(host, addr)
		return addr, nil
	}

	return netip.Addr{}, fmt.Errorf("%w: %s", ErrNotResolved, host)
}

var queryTypes = []domain.RRType{domain.RRTypeA, domain.RRTypeAAAA}

func (s *Service) viaPublicResolver(ctx context.Context, host string) (netip.Addr, bool) {
	for _, qtype := range queryTypes {
		resp, err := s.resolver.Lookup(ctx, host, qtype, s.public)
		if err != nil {
			s.logger.Warn(map[string]any{
				"host":  host,
				"type":  qtype.String(),
				"error": err.Error(),
			}, "Public resolver lookup failed")
			continue
		}
		if addr, ok := resp.FirstAnswer(qtype); ok {
			s.logger.Debug(map[string]any{
				"host": host,
				"addr": addr.String(),
			}, "Resolved via public resolver")
			return addr, true
		}
	}
	return netip.Addr{}, false
}

func (s *Service) viaRecursiveWalk(ctx context.Context, host string) (netip.Addr, bool) {
	for _, qtype := range queryTypes {
		resp, err := s.resolver.RecursiveLookup(ctx, host, qtype)
		if err != nil {
			s.logger.Warn(map[string]any{
				"host":  host,
				"type":  qtype.String(),
				"error": err.Error(),
			}, "Recursive resolution failed")
			continue
		}
		if addr, ok := resp.FirstAnswer(qtype); ok {
			s.logger.Debug(map[string]any{
				"host": host,
				"addr": addr.String(),
			}, "Resolved via recursive walk")
			return addr, true
		}
	}
	return netip.Addr{}, false
}
