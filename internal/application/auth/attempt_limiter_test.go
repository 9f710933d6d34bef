package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptLimiter_RafagaYRecarga(t *testing.T) {
	l := newAttemptLimiter(time.Minute, 3)
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("a1", t0), "intento %d", i+1)
	}
	assert.False(t, l.Allow("a1", t0))
	assert.False(t, l.Allow("a1", t0.Add(30*time.Second)))

	// Otro admin tiene su propio cupo.
	assert.True(t, l.Allow("a2", t0))

	// Pasado el intervalo se repone un intento, no la ráfaga.
	assert.True(t, l.Allow("a1", t0.Add(time.Minute)))
	assert.False(t, l.Allow("a1", t0.Add(time.Minute)))
}

func TestAttemptLimiter_Reset(t *testing.T) {
	l := newAttemptLimiter(time.Hour, 1)
	now := time.Now()
	assert.True(t, l.Allow("a1", now))
	assert.False(t, l.Allow("a1", now))

	l.Reset("a1")
	assert.True(t, l.Allow("a1", now))
}
