package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/joroheos90/easygymapp/internal/api"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// throttle hands out one token bucket per client IP. The burst it absorbs
// is the signup rush right before a popular class opens.
type throttle struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func newThrottle(rps float64, burst int, idle time.Duration) *throttle {
	t := &throttle{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
	}

	go t.sweep()

	return t
}

// sweep drops buckets for clients that have gone quiet, so the map does
// not grow with every IP ever seen.
func (t *throttle) sweep() {
	ticker := time.NewTicker(t.idle)
	defer ticker.Stop()

	for range ticker.C {
		t.mu.Lock()
		for ip, cl := range t.clients {
			if time.Since(cl.lastSeen) > t.idle {
				delete(t.clients, ip)
			}
		}
		t.mu.Unlock()
	}
}

func (t *throttle) allow(ip string) bool {
	t.mu.Lock()
	cl, ok := t.clients[ip]
	if !ok {
		cl = &client{bucket: rate.NewLimiter(t.limit, t.burst)}
		t.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	bucket := cl.bucket
	t.mu.Unlock()

	return bucket.Allow()
}

// RateLimitMiddleware rejects clients exceeding rps sustained requests
// with bursts above burst.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	t := newThrottle(rps, burst, 3*time.Minute)

	return func(c *gin.Context) {
		if !t.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
