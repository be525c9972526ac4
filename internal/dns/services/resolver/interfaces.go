package resolver

import (
	"context"
	"net/netip"
)

// Exchanger performs one blocking query/response datagram exchange with
// a name server. Timeout and retry policy belong to the implementation;
// the resolver treats any failure as exhaustion of that server.
type Exchanger interface {
	Exchange(ctx context.Context, payload []byte, server netip.AddrPort) ([]byte, error)
}
