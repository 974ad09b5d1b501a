package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetBeforeExpiry(t *testing.T) {
	cache := New[string](time.Minute)

	_, ok := cache.Get("k")
	require.False(t, ok)

	cache.Set("k", "v")
	got, ok := cache.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)
}

func TestExpiryEvictsOnRead(t *testing.T) {
	now := time.Now()
	cache := New[int](time.Minute)
	cache.SetClock(func() time.Time { return now })

	cache.Set("k", 42)

	now = now.Add(time.Minute + time.Second)
	_, ok := cache.Get("k")
	require.False(t, ok)

	// the expired entry must be gone, not just hidden: a read after
	// rolling the clock back should still miss
	now = now.Add(-time.Minute)
	_, ok = cache.Get("k")
	require.False(t, ok)
}

func TestSetOverwritesExpiry(t *testing.T) {
	now := time.Now()
	cache := New[int](time.Minute)
	cache.SetClock(func() time.Time { return now })

	cache.Set("k", 1)
	now = now.Add(time.Second * 50)
	cache.Set("k", 2)
	now = now.Add(time.Second * 50)

	got, ok := cache.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, got)
}
