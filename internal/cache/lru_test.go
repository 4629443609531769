package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a") // a becomes most recent
	assert.True(t, ok)

	c.Set("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[string](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	c.Set("k2", "v2")
	now = now.Add(30 * time.Second)
	c.Set("k3", "v3")

	now = now.Add(45 * time.Second)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.CleanExpired(), "only k2 left to expire")
	assert.Equal(t, 1, c.Size())

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestLRUCacheDelete(t *testing.T) {
	c := NewLRUCache[int](5, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	assert.Equal(t, 1, c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestManagerCleanNow(t *testing.T) {
	now := time.Now()
	c := NewLRUCache[int](5, time.Second)
	c.now = func() time.Time { return now }
	c.Set("a", 1)
	now = now.Add(2 * time.Second)

	m := NewManager()
	m.Register("test", c)
	assert.Equal(t, 1, m.CleanNow())

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}
