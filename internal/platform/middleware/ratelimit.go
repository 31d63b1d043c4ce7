// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/library/internal/platform/constants"
)

// limiterStore keeps one token bucket per client IP.
type limiterStore struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*rateLimitClient
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rateLimitClient),
	}
}

// allow takes one token from the bucket of ip.
func (store *limiterStore) allow(ip string, now time.Time) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	client, found := store.clients[ip]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(store.rps, store.burst)}
		store.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (store *limiterStore) sweep(now time.Time, ttl time.Duration) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for ip, client := range store.clients {
		if now.Sub(client.lastSeen) > ttl {
			delete(store.clients, ip)
		}
	}
}

func (store *limiterStore) size() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.clients)
}

// RateLimit answers 429 once a client IP exceeds rps with the given burst.
// Idle clients are swept until ctx is cancelled.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	store := newLimiterStore(rps, burst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				store.sweep(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !store.allow(RealIP(request), time.Now()) {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
