// Package ping sends ICMP echo probes to resolved addresses and reports
// per-probe round-trip times plus an aggregate summary. Sockets are
// unprivileged datagram ICMP sockets, so no capabilities are required on
// Linux hosts that allow them.
package ping

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/haukened/pingdns/internal/common/clock"
	"github.com/haukened/pingdns/internal/common/log"
)

// IANA protocol numbers for ICMP and ICMPv6.
const (
	protocolICMP   = 1
	protocolICMPv6 = 58
)

// Outcome classifies what came back for a single probe.
type Outcome int

const (
	// OutcomeReply is an echo reply matching the probe.
	OutcomeReply Outcome = iota
	// OutcomeTimeout means nothing matching came back in time.
	OutcomeTimeout
	// OutcomeUnreachable is a destination-unreachable response.
	OutcomeUnreachable
	// OutcomeTimeExceeded is a hop-limit-exceeded response.
	OutcomeTimeExceeded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReply:
		return "reply"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeUnreachable:
		return "destination unreachable"
	case OutcomeTimeExceeded:
		return "time exceeded"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(o))
	}
}

// Probe is the result of a single echo request.
type Probe struct {
	Seq     int
	From    netip.Addr
	Size    int
	RTT     time.Duration
	Outcome Outcome
}

// Stats aggregates a probe series.
type Stats struct {
	Sent     int
	Received int
	// Loss is the fraction of probes without a reply, in [0, 1].
	Loss float64
	Min  time.Duration
	Avg  time.Duration
	Max  time.Duration
}

// Summarize computes aggregate statistics over a probe series. Min, Avg,
// and Max cover replied probes only.
func Summarize(probes []Probe) Stats {
	s := Stats{Sent: len(probes)}
	var total time.Duration
	for _, p := range probes {
		if p.Outcome != OutcomeReply {
			continue
		}
		s.Received++
		total += p.RTT
		if s.Min == 0 || p.RTT < s.Min {
			s.Min = p.RTT
		}
		if p.RTT > s.Max {
			s.Max = p.RTT
		}
	}
	if s.Received > 0 {
		s.Avg = total / time.Duration(s.Received)
	}
	if s.Sent > 0 {
		s.Loss = float64(s.Sent-s.Received) / float64(s.Sent)
	}
	return s
}

// Pinger sends echo probe series to single addresses.
type Pinger struct {
	count    int
	size     int
	interval time.Duration
	timeout  time.Duration
	clock    clock.Clock
	logger   log.Logger
}

// Options configures a Pinger.
type Options struct {
	// Count is the number of probes per run.
	Count int
	// Size is the echo payload size in bytes.
	Size int
	// Interval is the delay between consecutive probes.
	Interval time.Duration
	// Timeout bounds the wait for each probe's reply.
	Timeout time.Duration
	Clock   clock.Clock
	Logger  log.Logger
}

// New creates a Pinger, defaulting unset options.
func New(opts Options) *Pinger {
	if opts.Count <= 0 {
		opts.Count = 4
	}
	if opts.Size < 0 {
		opts.Size = 0
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Pinger{
		count:    opts.Count,
		size:     opts.Size,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
}

// Run sends the configured probe series to addr and returns one Probe
// per request sent. A timed-out or unreachable probe is recorded, not an
// error; errors are reserved for socket-level failures. Run stops early
// when ctx is cancelled, returning the probes completed so far.
func (p *Pinger) Run(ctx context.Context, addr netip.Addr) ([]Probe, error) {
	network, proto := "udp4", protocolICMP
	listen := "0.0.0.0"
	if addr.Is6() {
		network, proto = "udp6", protocolICMPv6
		listen = "::"
	}

	conn, err := icmp.ListenPacket(network, listen)
	if err != nil {
		return nil, fmt.Errorf("failed to open ICMP socket: %w", err)
	}
	defer conn.Close()

	id := os.Getpid() & 0xffff
	probes := make([]Probe, 0, p.count)

	for seq := 1; seq <= p.count; seq++ {
		probe, err := p.probe(conn, proto, addr, id, seq)
		if err != nil {
			return probes, err
		}
		probes = append(probes, probe)

		p.logger.Debug(map[string]any{
			"addr":    addr.String(),
			"seq":     seq,
			"outcome": probe.Outcome.String(),
			"rtt":     probe.RTT.String(),
		}, "Probe completed")

		if seq == p.count {
			break
		}
		select {
		case <-ctx.Done():
			return probes, nil
		case <-time.After(p.interval):
		}
	}

	return probes, nil
}

// probe sends one echo request and waits for a matching response.
func (p *Pinger) probe(conn *icmp.PacketConn, proto int, addr netip.Addr, id, seq int) (Probe, error) {
	payload, err := echoRequest(proto, id, seq, p.size)
	if err != nil {
		return Probe{}, fmt.Errorf("failed to build echo request: %w", err)
	}

	dst := &net.UDPAddr{IP: addr.AsSlice()}
	sent := p.clock.Now()
	if _, err := conn.WriteTo(payload, dst); err != nil {
		return Probe{}, fmt.Errorf("failed to send probe to %s: %w", addr, err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(p.timeout)); err != nil {
		return Probe{}, fmt.Errorf("failed to set read deadline: %w", err)
	}

	buf := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return Probe{Seq: seq, Outcome: OutcomeTimeout, RTT: p.timeout}, nil
			}
			return Probe{}, fmt.Errorf("failed to read probe response: %w", err)
		}

		msg, err := icmp.ParseMessage(proto, buf[:n])
		if err != nil {
			continue
		}
		outcome, ok := classify(msg, seq)
		if !ok {
			continue
		}

		from := addr
		if ua, ok := peer.(*net.UDPAddr); ok {
			if a, ok := netip.AddrFromSlice(ua.IP); ok {
				from = a.Unmap()
			}
		}
		return Probe{
			Seq:     seq,
			From:    from,
			Size:    n,
			RTT:     p.clock.Now().Sub(sent),
			Outcome: outcome,
		}, nil
	}
}

// echoRequest builds and marshals an ICMP echo request with a patterned
// payload of the given size.
func echoRequest(proto, id, seq, size int) ([]byte, error) {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i & 0xff)
	}

	var typ icmp.Type = ipv4.ICMPTypeEcho
	if proto == protocolICMPv6 {
		typ = ipv6.ICMPTypeEchoRequest
	}
	msg := icmp.Message{
		Type: typ,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: data},
	}
	return msg.Marshal(nil)
}

// classify maps a parsed ICMP message to a probe outcome. Echo replies
// must carry the probe's sequence number; the ID is not checked because
// unprivileged datagram sockets rewrite it on Linux. Error responses
// always match, since the kernel delivers only those for our socket.
func classify(msg *icmp.Message, seq int) (Outcome, bool) {
	switch msg.Type {
	case ipv4.ICMPTypeEchoReply, ipv6.ICMPTypeEchoReply:
		echo, ok := msg.Body.(*icmp.Echo)
		if !ok || echo.Seq != seq {
			return 0, false
		}
		return OutcomeReply, true
	case ipv4.ICMPTypeDestinationUnreachable, ipv6.ICMPTypeDestinationUnreachable:
		return OutcomeUnreachable, true
	case ipv4.ICMPTypeTimeExceeded, ipv6.ICMPTypeTimeExceeded:
		return OutcomeTimeExceeded, true
	default:
		return 0, false
	}
}
