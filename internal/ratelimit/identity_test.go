package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "CDN header wins",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "203.0.113.5"},
			remoteAddr: "192.0.2.1:1234",
			expected:   "198.51.100.1",
		},
		{
			name:       "forwarded-for takes left-most entry",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1, 10.0.0.2"},
			remoteAddr: "192.0.2.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "forwarded-for with spaces",
			headers:    map[string]string{"X-Forwarded-For": "  203.0.113.5 , 10.0.0.1"},
			remoteAddr: "192.0.2.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "falls back to remote address host",
			remoteAddr: "192.0.2.1:1234",
			expected:   "192.0.2.1",
		},
		{
			name:       "ipv6 remote address",
			remoteAddr: "[::1]:8080",
			expected:   "::1",
		},
		{
			name:     "loopback placeholder when nothing available",
			expected: "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/poem", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(r))
		})
	}
}
