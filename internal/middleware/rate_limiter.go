package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// purgeInterval is how often expired per-IP windows are dropped.
const purgeInterval = 5 * time.Minute

// ipWindow tracks request counts of one IP within a fixed window.
type ipWindow struct {
	count     int
	windowEnd time.Time
}

// ipLimiter is a per-IP fixed-window limiter. Expired windows are purged
// inline, at most once per purgeInterval.
type ipLimiter struct {
	mu        sync.Mutex
	entries   map[string]*ipWindow
	limit     int
	window    time.Duration
	msg       string
	lastPurge time.Time
	now       func() time.Time
}

func newIPLimiter(limit int, window time.Duration, msg string) *ipLimiter {
	return &ipLimiter{
		entries: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
		msg:     msg,
		now:     time.Now,
	}
}

// allow counts one request of ip and reports whether it fits the window.
func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPurge) >= purgeInterval {
		l.purge(now)
	}

	entry, ok := l.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &ipWindow{windowEnd: now.Add(l.window)}
		l.entries[ip] = entry
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

func (l *ipLimiter) purge(now time.Time) {
	purged := 0
	for ip, entry := range l.entries {
		if now.After(entry.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	l.lastPurge = now
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter entries purged")
	}
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newIPLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter returns a general-purpose per-IP limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
