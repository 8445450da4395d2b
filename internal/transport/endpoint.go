package transport

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/behrlich/trackrelay/internal/errkind"
)

// Endpoint is a parsed "udp://<multicast-addr>:<port>" transport address.
type Endpoint struct {
	IP   net.IP
	Port int
}

// String renders e back to its canonical "udp://ip:port" form.
func (e Endpoint) String() string {
	return fmt.Sprintf("udp://%s:%d", e.IP, e.Port)
}

// UDPAddr returns the net.UDPAddr form used by net/ipv4 dial and listen calls.
func (e Endpoint) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: e.IP, Port: e.Port}
}

// ParseEndpoint parses a "udp://<multicast-addr>:<port>" URI into an Endpoint.
func ParseEndpoint(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, errkind.New(errkind.CodeSocketFailure, fmt.Sprintf("invalid endpoint %q: %v", raw, err))
	}
	if u.Scheme != "udp" {
		return Endpoint{}, errkind.New(errkind.CodeSocketFailure, fmt.Sprintf("endpoint %q must use udp:// scheme", raw))
	}
	host := u.Hostname()
	ip := net.ParseIP(host)
	if ip == nil {
		return Endpoint{}, errkind.New(errkind.CodeSocketFailure, fmt.Sprintf("endpoint %q has no valid IP host", raw))
	}
	portStr := u.Port()
	if portStr == "" {
		return Endpoint{}, errkind.New(errkind.CodeSocketFailure, fmt.Sprintf("endpoint %q is missing a port", raw))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Endpoint{}, errkind.New(errkind.CodeSocketFailure, fmt.Sprintf("endpoint %q has a non-numeric port: %v", raw, err))
	}
	return Endpoint{IP: ip, Port: port}, nil
}
