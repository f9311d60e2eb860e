package source

import (
	"sync"
	"time"
)

// respCache is a private short-TTL cache of raw HTTP response bodies, keyed
// by the exact outbound request URL. Entries expire lazily at read time;
// there is no background sweep.
type respCache struct {
	mu      sync.RWMutex
	entries map[string]respEntry
	now     func() time.Time
}

type respEntry struct {
	body       []byte
	capturedAt time.Time
}

func newRespCache() *respCache {
	return &respCache{
		entries: make(map[string]respEntry),
		now:     time.Now,
	}
}

func (c *respCache) get(key string, ttl time.Duration) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.capturedAt) >= ttl {
		return nil, false
	}
	return entry.body, true
}

func (c *respCache) put(key string, body []byte) {
	c.mu.Lock()
	c.entries[key] = respEntry{body: body, capturedAt: c.now()}
	c.mu.Unlock()
}
