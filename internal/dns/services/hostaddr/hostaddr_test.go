package hostaddr

import (
	"context"
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/pingdns/internal/dns/domain"
)

var _ Resolver = &fakeResolver{}

// fakeResolver records lookups and answers from fixed address maps.
type fakeResolver struct {
	oneShot       map[string]netip.Addr
	recursive     map[string]netip.Addr
	lookups       int
	recursions    int
	lookupErr     error
	recursiveErr  error
	lastServer    netip.AddrPort
	lastQueryType domain.RRType
}

func answerFor(name string, qtype domain.RRType, addr netip.Addr, ok bool) domain.Message {
	if !ok {
		return domain.Message{}
	}
	var data domain.RData
	switch qtype {
	case domain.RRTypeA:
		if !addr.Is4() {
			return domain.Message{}
		}
		data = domain.AData{Addr: addr}
	case domain.RRTypeAAAA:
		if !addr.Is6() {
			return domain.Message{}
		}
		data = domain.AAAAData{Addr: addr}
	default:
		return domain.Message{}
	}
	return domain.Message{
		Answers: []domain.ResourceRecord{{Name: name, Type: qtype, TTL: 300, Data: data}},
	}
}

func (f *fakeResolver) Lookup(_ context.Context, name string, qtype domain.RRType, server netip.AddrPort) (domain.Message, error) {
	f.lookups++
	f.lastServer = server
	f.lastQueryType = qtype
	if f.lookupErr != nil {
		return domain.Message{}, f.lookupErr
	}
	addr, ok := f.oneShot[name]
	return answerFor(name, qtype, addr, ok), nil
}

func (f *fakeResolver) RecursiveLookup(_ context.Context, name string, qtype domain.RRType) (domain.Message, error) {
	f.recursions++
	if f.recursiveErr != nil {
		return domain.Message{}, f.recursiveErr
	}
	addr, ok := f.recursive[name]
	return answerFor(name, qtype, addr, ok), nil
}

func noSystemResolver(context.Context, string) ([]netip.Addr, error) {
	return nil, errors.New("no such host")
}

var publicResolver = netip.MustParseAddrPort("8.8.8.8:53")

func newTestService(t *testing.T, r Resolver) *Service {
	t.Helper()
	svc, err := New(Options{Resolver: r, Public: publicResolver, MemoSize: 8})
	require.NoError(t, err)
	svc.system = noSystemResolver
	return svc
}

func TestResolve_IPLiteralBypassesResolution(t *testing.T) {
	tests := []struct {
		name    string
		literal string
	}{
		{"ipv4", "192.0.2.1"},
		{"ipv6", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeResolver{}
			svc := newTestService(t, fake)

			addr, err := svc.Resolve(context.Background(), tt.literal)
			require.NoError(t, err)

			assert.Equal(t, netip.MustParseAddr(tt.literal), addr)
			assert.Zero(t, fake.lookups, "IP literals must not hit the resolver")
			assert.Zero(t, fake.recursions)
		})
	}
}

func TestResolve_SystemResolverFastPath(t *testing.T) {
	fake := &fakeResolver{}
	svc := newTestService(t, fake)
	svc.system = func(context.Context, string) ([]netip.Addr, error) {
		return []netip.Addr{netip.MustParseAddr("93.184.216.34")}, nil
	}

	addr, err := svc.Resolve(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, netip.MustParseAddr("93.184.216.34"), addr)
	assert.Zero(t, fake.lookups, "OS resolver success must short-circuit DNS lookups")
}

func TestResolve_PublicResolverPath(t *testing.T) {
	fake := &fakeResolver{oneShot: map[string]netip.Addr{
		"example.com": netip.MustParseAddr("93.184.216.34"),
	}}
	svc := newTestService(t, fake)

	addr, err := svc.Resolve(context.Background(), "Example.COM.")
	require.NoError(t, err)

	assert.Equal(t, netip.MustParseAddr("93.184.216.34"), addr)
	assert.Equal(t, publicResolver, fake.lastServer)
	assert.Equal(t, domain.RRTypeA, fake.lastQueryType)
	assert.Zero(t, fake.recursions)
}

func TestResolve_RecursiveFallback(t *testing.T) {
	fake := &fakeResolver{
		lookupErr: errors.New("timeout"),
		recursive: map[string]netip.Addr{
			"example.com": netip.MustParseAddr("93.184.216.34"),
		},
	}
	svc := newTestService(t, fake)

	addr, err := svc.Resolve(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, netip.MustParseAddr("93.184.216.34"), addr)
	assert.Equal(t, 1, fake.recursions)
}

func TestResolve_FallsBackToAAAA(t *testing.T) {
	fake := &fakeResolver{oneShot: map[string]netip.Addr{
		"v6only.example.com": netip.MustParseAddr("2001:db8::1"),
	}}
	svc := newTestService(t, fake)

	addr, err := svc.Resolve(context.Background(), "v6only.example.com")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("2001:db8::1"), addr)
}

func TestResolve_MemoHitSkipsResolver(t *testing.T) {
	fake := &fakeResolver{oneShot: map[string]netip.Addr{
		"example.com": netip.MustParseAddr("93.184.216.34"),
	}}
	svc := newTestService(t, fake)

	_, err := svc.Resolve(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, 1, fake.lookups)

	// A second resolution, including a differently-cased spelling, is
	// served from the memo.
	addr, err := svc.Resolve(context.Background(), "EXAMPLE.com")
	require.NoError(t, err)

	assert.Equal(t, netip.MustParseAddr("93.184.216.34"), addr)
	assert.Equal(t, 1, fake.lookups)
	assert.Zero(t, fake.recursions)
}

func TestResolve_AllStrategiesFail(t *testing.T) {
	fake := &fakeResolver{
		lookupErr:    errors.New("timeout"),
		recursiveErr: errors.New("timeout"),
	}
	svc := newTestService(t, fake)

	_, err := svc.Resolve(context.Background(), "unresolvable.invalid")
	assert.ErrorIs(t, err, ErrNotResolved)
}
