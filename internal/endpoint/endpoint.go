package endpoint

import "strings"

// Protocol identifies how an endpoint is reached.
type Protocol int

const (
	Unknown Protocol = iota
	TCP
	UDP
	Unix
)

func (p Protocol) String() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	case Unix:
		return "unix"
	default:
		return "unknown"
	}
}

// Endpoint is a parsed dependency address. It is built once per raw string
// and never mutated. TCP/UDP endpoints carry Host and Port; unix endpoints
// carry Path. A non-empty Reason means the endpoint can never be probed as
// written and must be treated as an immediate failure, not retried.
type Endpoint struct {
	Raw      string
	Protocol Protocol
	Host     string
	Port     string
	Path     string
	Reason   string
}

// Usable reports whether a connection attempt makes sense at all.
func (e Endpoint) Usable() bool { return e.Reason == "" }

// Address returns the dial target: host:port for tcp/udp, the socket path
// for unix.
func (e Endpoint) Address() string {
	if e.Protocol == Unix {
		return e.Path
	}
	return e.Host + ":" + e.Port
}

// Parse splits raw on the first "://" into a protocol tag and the rest.
// For tcp/udp the rest splits into host and port on its LAST colon; since
// the rest cannot contain "://", that is also the last colon of the raw
// string. IPv6 literals are not handled: a bracketed or multi-colon host
// keeps everything up to the final colon as the host.
//
// Parse never fails. A malformed string yields an Endpoint whose Reason
// says why it will never be probed.
func Parse(raw string) Endpoint {
	e := Endpoint{Raw: raw, Protocol: Unknown}

	proto, rest, found := strings.Cut(raw, "://")
	if !found || proto == "" {
		e.Reason = "missing protocol"
		return e
	}
	if rest == "" {
		e.Reason = "missing address"
		return e
	}

	switch proto {
	case "unix":
		// The path is taken verbatim; colons are legal in it.
		e.Protocol = Unix
		e.Path = rest
	case "tcp", "udp":
		if proto == "tcp" {
			e.Protocol = TCP
		} else {
			e.Protocol = UDP
		}
		i := strings.LastIndex(rest, ":")
		if i < 0 {
			e.Reason = "missing port"
			return e
		}
		e.Host, e.Port = rest[:i], rest[i+1:]
		if e.Host == "" {
			e.Reason = "missing host"
		} else if e.Port == "" {
			e.Reason = "missing port"
		}
	default:
		e.Reason = "unsupported protocol " + proto
	}
	return e
}
