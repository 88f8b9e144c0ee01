package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter is a per-IP limiter with its last activity time
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TwoTierRateLimiter implements both global and per-IP rate limiting
type TwoTierRateLimiter struct {
	global     *rate.Limiter
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	perIPBurst int
	perIPRate  rate.Limit
	idleAfter  time.Duration
}

// NewTwoTierRateLimiter creates a new two-tier rate limiter.
// Bursts equal the per-second rates; non-positive values fall back to 1.
func NewTwoTierRateLimiter(globalPerSec, perIPPerSec int) *TwoTierRateLimiter {
	globalPerSec = atLeastOne(globalPerSec)
	perIPPerSec = atLeastOne(perIPPerSec)

	limiter := &TwoTierRateLimiter{
		global:     rate.NewLimiter(rate.Limit(globalPerSec), globalPerSec),
		clients:    make(map[string]*clientLimiter),
		perIPBurst: perIPPerSec,
		perIPRate:  rate.Limit(perIPPerSec),
		idleAfter:  30 * time.Minute,
	}

	go limiter.cleanupClients()

	return limiter
}

// Allow checks both global and per-IP rate limits without blocking.
// A request denied by either tier consumes no token from the other.
func (trl *TwoTierRateLimiter) Allow(clientIP string) bool {
	trl.mu.Lock()
	defer trl.mu.Unlock()

	client := trl.clientLocked(clientIP)
	if client.Tokens() < 1 {
		return false
	}
	if !trl.global.Allow() {
		return false
	}
	return client.Allow()
}

// Wait blocks until both tiers admit the request or ctx ends
func (trl *TwoTierRateLimiter) Wait(ctx context.Context, clientIP string) error {
	if err := trl.clientLimiter(clientIP).Wait(ctx); err != nil {
		return err
	}
	return trl.global.Wait(ctx)
}

// Clients returns the number of tracked client IPs
func (trl *TwoTierRateLimiter) Clients() int {
	trl.mu.Lock()
	defer trl.mu.Unlock()
	return len(trl.clients)
}

func (trl *TwoTierRateLimiter) clientLimiter(clientIP string) *rate.Limiter {
	trl.mu.Lock()
	defer trl.mu.Unlock()
	return trl.clientLocked(clientIP)
}

// clientLocked returns the limiter of clientIP; trl.mu must be held
func (trl *TwoTierRateLimiter) clientLocked(clientIP string) *rate.Limiter {
	client, ok := trl.clients[clientIP]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(trl.perIPRate, trl.perIPBurst)}
		trl.clients[clientIP] = client
	}
	client.lastSeen = time.Now()
	return client.limiter
}

// cleanupClients drops limiters of IPs idle for longer than idleAfter
func (trl *TwoTierRateLimiter) cleanupClients() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		trl.evictIdle(time.Now().Add(-trl.idleAfter))
	}
}

func (trl *TwoTierRateLimiter) evictIdle(cutoff time.Time) {
	trl.mu.Lock()
	defer trl.mu.Unlock()

	for ip, client := range trl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(trl.clients, ip)
		}
	}
}

// NewProviderLimiter paces outbound SERP provider calls
func NewProviderLimiter(requestsPerSec int) *rate.Limiter {
	requestsPerSec = atLeastOne(requestsPerSec)
	return rate.NewLimiter(rate.Limit(requestsPerSec), requestsPerSec)
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
