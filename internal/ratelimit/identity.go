package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the client identity for rate limiting. A CDN-injected
// header is trusted first, then the left-most X-Forwarded-For entry, then the
// connection address. Falls back to loopback when nothing is available.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return "127.0.0.1"
}
