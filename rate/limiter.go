// Package rate tracks a token-bucket limiter per client, evicting
// clients that go quiet.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

type Limiter struct {
	rps    float64
	burst  int
	expiry time.Duration

	mu      sync.Mutex
	clients map[string]*client
}

// NewLimiter allows rps requests per second with the given burst per
// client id. Clients idle for more than expiry minutes are dropped
// and start with a fresh bucket on their next request.
func NewLimiter(burst int, expiry int, rps float64) *Limiter {
	l := &Limiter{
		rps:     rps,
		burst:   burst,
		expiry:  time.Duration(expiry) * time.Minute,
		clients: make(map[string]*client),
	}

	go l.sweep()

	return l
}

// Check reports whether the client may proceed with one more request.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[id]
	if !ok {
		c = &client{bucket: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[id] = c
	}
	c.lastSeen = time.Now()

	return c.bucket.Allow()
}

func (l *Limiter) sweep() {
	for range time.Tick(sweepInterval) {
		l.mu.Lock()
		for id, c := range l.clients {
			if time.Since(c.lastSeen) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}

// Every converts a per-request interval into a requests-per-second
// limit.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
