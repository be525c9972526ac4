// Package transport provides the one-shot UDP datagram exchange the
// resolver is built on. Each exchange binds its own socket on an
// ephemeral local port; timeout policy lives here, not in the resolver.
package transport

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/haukened/pingdns/internal/common/log"
	"github.com/haukened/pingdns/internal/dns/gateways/wire"
)

// UDPClient sends a query datagram and waits for a single response
// datagram of at most wire.MaxMessageSize bytes.
type UDPClient struct {
	timeout time.Duration
	logger  log.Logger
}

// NewUDPClient creates a UDP exchanger with the given per-exchange timeout.
func NewUDPClient(timeout time.Duration, logger log.Logger) *UDPClient {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &UDPClient{
		timeout: timeout,
		logger:  logger,
	}
}

// Exchange sends payload to server and returns the first response
// datagram. The socket lives for the duration of one exchange only.
func (c *UDPClient) Exchange(ctx context.Context, payload []byte, server netip.AddrPort) ([]byte, error) {
	conn, err := net.DialUDP("udp", nil, net.UDPAddrFromAddrPort(server))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", server, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to send query to %s: %w", server, err)
	}

	buffer := make([]byte, wire.MaxMessageSize)
	n, err := conn.Read(buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", server, err)
	}

	c.logger.Debug(map[string]any{
		"server": server.String(),
		"sent":   len(payload),
		"recv":   n,
	}, "UDP exchange completed")

	return buffer[:n], nil
}
