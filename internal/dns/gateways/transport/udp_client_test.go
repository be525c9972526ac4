package transport

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/pingdns/internal/common/log"
)

// startUDPServer runs a one-shot UDP responder on a loopback port and
// returns its address. A nil reply means never respond.
func startUDPServer(t *testing.T, reply []byte) netip.AddrPort {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 1024)
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil || reply == nil {
			return
		}
		_ = n
		conn.WriteToUDP(reply, addr)
	}()

	return conn.LocalAddr().(*net.UDPAddr).AddrPort()
}

func TestExchange_SendsAndReceives(t *testing.T) {
	reply := []byte{0xAB, 0xCD, 0x01}
	server := startUDPServer(t, reply)

	client := NewUDPClient(2*time.Second, log.NewNoopLogger())
	got, err := client.Exchange(context.Background(), []byte{0x00, 0x01}, server)
	require.NoError(t, err)

	assert.Equal(t, reply, got)
}

func TestExchange_Timeout(t *testing.T) {
	server := startUDPServer(t, nil)

	client := NewUDPClient(50*time.Millisecond, log.NewNoopLogger())
	_, err := client.Exchange(context.Background(), []byte{0x00}, server)

	require.Error(t, err)
	netErr, ok := err.(net.Error)
	if ok {
		assert.True(t, netErr.Timeout())
	}
}

func TestExchange_ContextDeadlineWins(t *testing.T) {
	server := startUDPServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewUDPClient(10*time.Second, log.NewNoopLogger())
	start := time.Now()
	_, err := client.Exchange(ctx, []byte{0x00}, server)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "the context deadline must override the client timeout")
}
