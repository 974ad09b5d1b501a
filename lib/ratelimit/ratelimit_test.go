package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowThreshold(t *testing.T) {
	now := time.Now()
	limiter := NewLimiter(20, time.Minute)
	limiter.SetClock(func() time.Time { return now })

	for i := 0; i < 20; i++ {
		require.True(t, limiter.Allow("1.2.3.4:anchor"), "request %d", i+1)
	}
	require.False(t, limiter.Allow("1.2.3.4:anchor"))

	// other keys are unaffected
	require.True(t, limiter.Allow("1.2.3.4:chain"))
	require.True(t, limiter.Allow("5.6.7.8:anchor"))
}

func TestWindowReset(t *testing.T) {
	now := time.Now()
	limiter := NewLimiter(20, time.Minute)
	limiter.SetClock(func() time.Time { return now })

	for i := 0; i < 25; i++ {
		limiter.Allow("k")
	}
	require.False(t, limiter.Allow("k"))

	now = now.Add(time.Minute + time.Second)
	require.True(t, limiter.Allow("k"))

	// the fresh window starts at count 1, so 19 more fit
	for i := 0; i < 19; i++ {
		require.True(t, limiter.Allow("k"), "request %d", i+2)
	}
	require.False(t, limiter.Allow("k"))
}

func TestRejectionDoesNotExtendWindow(t *testing.T) {
	now := time.Now()
	limiter := NewLimiter(1, time.Minute)
	limiter.SetClock(func() time.Time { return now })

	require.True(t, limiter.Allow("k"))
	require.False(t, limiter.Allow("k"))

	now = now.Add(time.Second * 59)
	require.False(t, limiter.Allow("k"))
	now = now.Add(time.Second * 2)
	require.True(t, limiter.Allow("k"))
}
