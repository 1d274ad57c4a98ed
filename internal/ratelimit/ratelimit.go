// Package ratelimit provides per-client rate limiting using a sliding window.
// It is a best-effort abuse deterrent protecting the upstream LLM quota, not a
// security boundary: state is process-local and lost on restart.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Info contains information about rate limit status for one decision.
type Info struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is the number of seconds until the oldest in-window request
	// expires. It shrinks as the window ages.
	Reset time.Duration
}

// Limiter manages sliding windows for multiple clients. Each client+endpoint
// key holds the ordered request instants inside the trailing window; entries
// older than the window are pruned on every decision.
type Limiter struct {
	mu         sync.Mutex
	windows    map[string][]time.Time
	config     *Config
	now        func() time.Time
	cleanupTic *time.Ticker
	cleanupEnd chan struct{}
}

// NewLimiter creates a new limiter with the given configuration. A nil
// configuration uses defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		windows: make(map[string][]time.Time),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTic = time.NewTicker(config.CleanupInterval)
		l.cleanupEnd = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks whether a request from the given client is admitted for the
// specified endpoint, recording it if so. Concurrent requests from the same
// client serialize on the limiter mutex; accounting is best-effort.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	cfg := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if cfg == nil {
		cfg = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if cfg.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + path + ":" + method

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-cfg.Window)

	valid := pruneBefore(l.windows[key], windowStart)

	if len(valid) >= cfg.Limit {
		l.windows[key] = valid
		return false, Info{
			Allowed:   false,
			Limit:     cfg.Limit,
			Remaining: 0,
			Reset:     untilExpiry(valid[0], cfg.Window, now),
		}
	}

	valid = append(valid, now)
	l.windows[key] = valid

	return true, Info{
		Allowed:   true,
		Limit:     cfg.Limit,
		Remaining: cfg.Limit - len(valid),
		Reset:     untilExpiry(valid[0], cfg.Window, now),
	}
}

// pruneBefore drops timestamps at or before cutoff. Timestamps are appended
// in order, so the suffix after the first surviving entry is kept whole.
func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	for i, ts := range timestamps {
		if ts.After(cutoff) {
			return timestamps[i:]
		}
	}
	return nil
}

// untilExpiry returns the whole seconds until oldest leaves the window,
// rounded up and never negative.
func untilExpiry(oldest time.Time, window time.Duration, now time.Time) time.Duration {
	remaining := oldest.Add(window).Sub(now)
	if remaining < 0 {
		return 0
	}
	secs := math.Ceil(remaining.Seconds())
	return time.Duration(secs) * time.Second
}

// cleanupLoop periodically drops keys whose every timestamp has left the
// longest configured window, bounding memory for one-off clients.
func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTic.C:
			l.cleanupWindows()
		case <-l.cleanupEnd:
			return
		}
	}
}

func (l *Limiter) cleanupWindows() {
	maxWindow := l.config.DefaultWindow
	for _, cfg := range l.config.EndpointConfigs {
		if cfg.Window > maxWindow {
			maxWindow = cfg.Window
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxWindow)
	for key, timestamps := range l.windows {
		if valid := pruneBefore(timestamps, cutoff); len(valid) == 0 {
			delete(l.windows, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTic != nil {
		l.cleanupTic.Stop()
	}
	if l.cleanupEnd != nil {
		close(l.cleanupEnd)
	}
}
