package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Límites de intentos por admin: ráfaga inicial y luego uno por intervalo.
const (
	otpVerifyBurst    = 5
	otpVerifyInterval = time.Minute
	otpSendBurst      = 3
	otpSendInterval   = time.Minute
)

// attemptLimiter token bucket por clave (admin ID). Las claves se borran con Reset.
type attemptLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newAttemptLimiter(interval time.Duration, burst int) *attemptLimiter {
	return &attemptLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
		burst:    burst,
	}
}

// Allow consume un intento de key en el instante now.
func (l *attemptLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.AllowN(now, 1)
}

// Reset olvida los intentos de key.
func (l *attemptLimiter) Reset(key string) {
	l.mu.Lock()
	delete(l.limiters, key)
	l.mu.Unlock()
}
