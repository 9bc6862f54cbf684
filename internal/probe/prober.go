package probe

import (
	"context"
	"net"
	"time"

	"github.com/hamed0406/waitgate/internal/endpoint"
)

// Outcome classifies a single probe attempt.
type Outcome int

const (
	// Open means the endpoint accepted the connection. For UDP it only
	// means the send was not immediately rejected.
	Open Outcome = iota
	// Closed means the attempt was refused or timed out; retrying may help.
	Closed
	// Invalid means the endpoint can never be reached as written; retrying
	// is pointless.
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "invalid"
	}
}

// Result holds the outcome of one probe attempt.
type Result struct {
	Outcome Outcome
	Reason  string
	Latency time.Duration
}

// Prober performs a single reachability check against one endpoint.
// Implementations open at most one transient socket per call and close it
// on every exit path; retrying is the caller's job.
type Prober interface {
	Probe(ctx context.Context, ep endpoint.Endpoint) Result
}

// DialTimeout bounds a single connection attempt. It is deliberately short
// and independent of any polling budget the caller enforces.
const DialTimeout = 3 * time.Second

// NetProber probes endpoints over the operating system's network stack.
//
// The UDP check is weaker than TCP or unix: a datagram send only fails when
// the kernel already knows the destination is unreachable, so a silent but
// non-rejecting listener still reports Open. Callers needing a real UDP
// health signal must check at the application layer themselves.
type NetProber struct {
	Timeout time.Duration

	// dial is swappable in tests.
	dial func(ctx context.Context, network, address string) (net.Conn, error)
}

func NewNetProber() *NetProber {
	return &NetProber{
		Timeout: DialTimeout,
		dial:    (&net.Dialer{}).DialContext,
	}
}

func (p *NetProber) Probe(ctx context.Context, ep endpoint.Endpoint) Result {
	if !ep.Usable() {
		return Result{Outcome: Invalid, Reason: ep.Reason}
	}

	switch ep.Protocol {
	case endpoint.TCP:
		return p.connect(ctx, "tcp", ep.Address())
	case endpoint.Unix:
		return p.connect(ctx, "unix", ep.Path)
	case endpoint.UDP:
		return p.sendDatagram(ctx, ep.Address())
	default:
		return Result{Outcome: Invalid, Reason: "unsupported protocol"}
	}
}

// connect makes one attempt and closes the connection right away; being
// accepted is the entire health signal.
func (p *NetProber) connect(ctx context.Context, network, address string) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	start := time.Now()
	conn, err := p.dial(ctx, network, address)
	if err != nil {
		return Result{Outcome: Closed, Reason: err.Error(), Latency: time.Since(start)}
	}
	_ = conn.Close()
	return Result{Outcome: Open, Latency: time.Since(start)}
}

// sendDatagram reports Open unless the zero-length send fails outright.
func (p *NetProber) sendDatagram(ctx context.Context, address string) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	start := time.Now()
	conn, err := p.dial(ctx, "udp", address)
	if err != nil {
		return Result{Outcome: Closed, Reason: err.Error(), Latency: time.Since(start)}
	}
	defer conn.Close()

	if _, err := conn.Write([]byte{}); err != nil {
		return Result{Outcome: Closed, Reason: err.Error(), Latency: time.Since(start)}
	}
	return Result{Outcome: Open, Latency: time.Since(start)}
}

func (p *NetProber) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DialTimeout
	}
	return p.Timeout
}
