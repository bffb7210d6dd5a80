package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(3, time.Hour)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.Allow("1.2.3.4", now))
	assert.True(t, l.Allow("1.2.3.4", now.Add(time.Minute)))
	assert.True(t, l.Allow("1.2.3.4", now.Add(2*time.Minute)))
	assert.False(t, l.Allow("1.2.3.4", now.Add(3*time.Minute)))
}

func TestLimiter_SeparateIdentities(t *testing.T) {
	l := New(1, time.Hour)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.Allow("1.2.3.4", now))
	assert.False(t, l.Allow("1.2.3.4", now))
	assert.True(t, l.Allow("5.6.7.8", now))
}

func TestLimiter_WindowExpiry(t *testing.T) {
	l := New(1, time.Hour)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.Allow("1.2.3.4", now))
	assert.False(t, l.Allow("1.2.3.4", now.Add(59*time.Minute)))
	assert.True(t, l.Allow("1.2.3.4", now.Add(time.Hour)))
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Hour)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.Allow("1.2.3.4", now))
	assert.False(t, l.Allow("1.2.3.4", now))

	l.Reset()
	assert.True(t, l.Allow("1.2.3.4", now))
}

func TestLimiter_Cleanup(t *testing.T) {
	l := New(1, time.Hour)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	l.Allow("1.2.3.4", now)
	l.Allow("5.6.7.8", now.Add(30*time.Minute))

	l.Cleanup(now.Add(time.Hour))

	assert.Len(t, l.counters, 1)
	_, kept := l.counters["5.6.7.8"]
	assert.True(t, kept)
}
