package cache

import (
	"log/slog"
	"time"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}

// Cleaner interface for caches that support cleanup
type Cleaner interface {
	CleanExpired() int
}

// Manager runs periodic expiry for a set of caches.
type Manager struct {
	caches      map[string]Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
	started     bool
}

func NewManager() *Manager {
	return &Manager{
		caches:      make(map[string]Cleaner),
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a named cache to the manager. Must be called before StartCleanup.
func (m *Manager) Register(name string, cache Cleaner) {
	m.caches[name] = cache
}

// StartCleanup begins periodic cleanup of all registered caches
func (m *Manager) StartCleanup(interval time.Duration) {
	m.started = true
	go m.cleanup(interval)
}

// CleanNow expires stale entries in every cache and returns the number removed.
func (m *Manager) CleanNow() int {
	total := 0
	for name, c := range m.caches {
		n := c.CleanExpired()
		if n > 0 {
			slog.Debug("Cache cleanup completed", "cache", name, "entries_removed", n)
		}
		total += n
	}
	return total
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanNow()
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop stops the cleanup routine and waits for it to exit.
func (m *Manager) Stop() {
	if !m.started {
		return
	}
	m.started = false
	close(m.stopCleanup)
	<-m.cleanupDone
}
