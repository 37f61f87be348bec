package helpers

import (
	"errors"
	"net"
	"net/netip"
	"strings"
)

// DefaultDNSPort is used when a nameserver address carries no port.
const DefaultDNSPort = "53"

// WithDefaultPort returns addr as host:port, appending port when addr has
// none. Bare IPv6 literals ("2001:db8::1") and bracketed ones ("[::1]") are
// recognized and re-bracketed.
func WithDefaultPort(addr, port string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", errors.New("empty address")
	}
	if host, p, err := net.SplitHostPort(addr); err == nil {
		if host == "" || p == "" {
			return "", errors.New("address " + addr + " is missing host or port")
		}
		return addr, nil
	}
	host := strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]")
	if strings.Contains(host, ":") {
		if _, err := netip.ParseAddr(host); err != nil {
			return "", errors.New("invalid address " + addr)
		}
	}
	return net.JoinHostPort(host, port), nil
}
