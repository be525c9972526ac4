// Package resolver drives DNS resolution over a datagram transport: a
// one-shot Lookup against a chosen server, and a RecursiveLookup that
// walks the delegation hierarchy from a root-server hint until it holds
// an authoritative answer or a negative result.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/netip"

	"github.com/haukened/pingdns/internal/common/log"
	"github.com/haukened/pingdns/internal/dns/domain"
	"github.com/haukened/pingdns/internal/dns/gateways/wire"
)

// ErrResolutionExhausted reports that a delegation walk exceeded its
// iteration cap or its nested-resolution depth cap without reaching a
// terminal response.
var ErrResolutionExhausted = errors.New("resolution exhausted")

const dnsPort = 53

// Resolver holds the transport and the caps bounding a delegation walk.
type Resolver struct {
	exchanger     Exchanger
	root          netip.AddrPort
	maxIterations uint
	maxDepth      uint
	logger        log.Logger
}

// Options configures a Resolver.
type Options struct {
	// Exchanger performs the query/response exchanges.
	Exchanger Exchanger
	// Root is the root-server hint that bootstraps recursive resolution.
	Root netip.AddrPort
	// MaxIterations caps delegation hops within one walk.
	MaxIterations uint
	// MaxDepth caps nested nameserver resolutions.
	MaxDepth uint
	Logger   log.Logger
}

// New creates a Resolver with the given options, applying conservative
// defaults for unset caps.
func New(opts Options) *Resolver {
	if opts.MaxIterations == 0 {
		opts.MaxIterations = 16
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = 4
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Resolver{
		exchanger:     opts.Exchanger,
		root:          opts.Root,
		maxIterations: opts.MaxIterations,
		maxDepth:      opts.MaxDepth,
		logger:        opts.Logger,
	}
}

// Lookup performs exactly one query/response exchange against server and
// returns the decoded response without any delegation walking. It is the
// base primitive RecursiveLookup is built from.
func (r *Resolver) Lookup(ctx context.Context, name string, qtype domain.RRType, server netip.AddrPort) (domain.Message, error) {
	query := domain.NewQueryMessage(uint16(rand.Uint32()), domain.NewQuestion(name, qtype))

	payload, err := wire.EncodeMessage(query)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to encode query: %w", err)
	}

	raw, err := r.exchanger.Exchange(ctx, payload, server)
	if err != nil {
		return domain.Message{}, err
	}

	response, err := wire.DecodeMessage(raw)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to decode response from %s: %w", server, err)
	}
	return response, nil
}

// RecursiveLookup resolves name starting from the root-server hint,
// following NS delegations until a terminal response: a non-empty answer
// section with NOERROR, or NXDOMAIN. Delegations with glue records are
// followed directly; a delegation naming only a host triggers a nested,
// depth-capped resolution of that host's A record. When the authority
// section offers no way forward, the last response is returned as-is.
func (r *Resolver) RecursiveLookup(ctx context.Context, name string, qtype domain.RRType) (domain.Message, error) {
	return r.recursiveLookup(ctx, name, qtype, 0)
}

func (r *Resolver) recursiveLookup(ctx context.Context, name string, qtype domain.RRType, depth uint) (domain.Message, error) {
	if depth >= r.maxDepth {
		return domain.Message{}, fmt.Errorf("%w: nested nameserver resolution exceeded depth %d", ErrResolutionExhausted, r.maxDepth)
	}

	server := r.root
	for i := uint(0); i < r.maxIterations; i++ {
		r.logger.Debug(map[string]any{
			"name":   name,
			"type":   qtype.String(),
			"server": server.String(),
			"hop":    i,
			"depth":  depth,
		}, "Querying nameserver")

		response, err := r.Lookup(ctx, name, qtype, server)
		if err != nil {
			return domain.Message{}, err
		}

		// Terminal: an answer with NOERROR, or a negative NXDOMAIN.
		if (len(response.Answers) > 0 && response.Header.RCode == domain.RCodeNoError) ||
			response.Header.RCode == domain.RCodeNxDomain {
			return response, nil
		}

		// Prefer glue: a delegation whose address is already in the
		// additional section costs no extra lookups.
		if addr, ok := response.ResolvedNameserver(name, qtype); ok {
			server = netip.AddrPortFrom(addr, dnsPort)
			continue
		}

		host, ok := response.UnresolvedNameserver(name)
		if !ok {
			// Nothing to delegate to; surface what we have.
			return response, nil
		}

		nested, err := r.recursiveLookup(ctx, host, domain.RRTypeA, depth+1)
		if err != nil {
			return domain.Message{}, err
		}
		addr, ok := nested.FirstAnswer(domain.RRTypeA)
		if !ok {
			// The nameserver host itself did not resolve; no further
			// progress is possible.
			return response, nil
		}
		server = netip.AddrPortFrom(addr, dnsPort)
	}

	return domain.Message{}, fmt.Errorf("%w: no terminal response for %s within %d delegations", ErrResolutionExhausted, name, r.maxIterations)
}
