// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// window holds the request times of one client inside the sliding window.
type window struct {
	mu    sync.Mutex
	times []time.Time
}

// RateLimiter caps requests per client IP in a sliding window. It guards
// the endpoints that spend model tokens.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
	stop    chan struct{}
}

// NewRateLimiter allows limit requests per period and starts a janitor
// goroutine that forgets idle clients. Call Stop on shutdown.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

// Stop ends the janitor goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// allow records a request from key and reports whether it fits the limit.
// When it does not, retry is the time until the oldest request expires.
func (rl *RateLimiter) allow(key string) (ok bool, retry time.Duration) {
	rl.mu.Lock()
	win, exists := rl.clients[key]
	if !exists {
		win = &window{}
		rl.clients[key] = win
	}
	rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.period)

	win.mu.Lock()
	defer win.mu.Unlock()

	kept := win.times[:0]
	for _, ts := range win.times {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	win.times = kept

	if len(win.times) >= rl.limit {
		return false, win.times[0].Sub(cutoff)
	}
	win.times = append(win.times, now)
	return true, 0
}

// sweep drops clients whose whole window has expired.
func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rl.period)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, win := range rl.clients {
		win.mu.Lock()
		idle := len(win.times) == 0 || !win.times[len(win.times)-1].After(cutoff)
		win.mu.Unlock()
		if idle {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
// The client key is the host part of RemoteAddr, which chi's RealIP
// middleware has already rewritten for proxied requests.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, retry := rl.allow(ip)
		if !ok {
			secs := int(retry.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			slog.Warn("rate limit exceeded", "remote", ip, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
