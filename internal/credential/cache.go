package credential

import "sync"

// Cache holds the last decrypted administrator password for the lifetime of
// the process. There is no invalidation: a replaced instance's old password
// stays until the process exits. Concurrent writers race and the last one
// wins; every writer stores the same plaintext for the same blob.
type Cache struct {
	mu    sync.RWMutex
	value string
	set   bool
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.set
}

func (c *Cache) Set(password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = password
	c.set = true
}
