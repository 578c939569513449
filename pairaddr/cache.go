package pairaddr

import (
	"sync"

	"github.com/crestswap/crest/types"
)

// pairKey identifies one derivation: the deployment parameters plus the
// pair in canonical order.
type pairKey struct {
	factory      [AddressLen]byte
	initCodeHash [32]byte
	first        types.Asset
	second       types.Asset
}

// Cache memoizes pair-address derivations. Derivation is pure, so entries
// never expire. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	addrs map[pairKey]Address

	hits   uint64
	misses uint64

	metrics *Metrics
}

// NewCache returns an empty cache wired to the shared Prometheus metrics.
func NewCache() *Cache {
	return &Cache{
		addrs:   make(map[pairKey]Address),
		metrics: GetMetrics(),
	}
}

// Lookup returns the pool address for the pair, deriving and storing it on
// first use. Invalid inputs fail exactly as Derive does and are never
// cached.
func (c *Cache) Lookup(factory []byte, initCodeHash [32]byte, a, b types.Asset) (Address, error) {
	if len(factory) != AddressLen {
		return Address{}, types.ErrInvalidAddress.Wrapf("factory address must be %d bytes, got %d", AddressLen, len(factory))
	}
	var key pairKey
	copy(key.factory[:], factory)
	key.initCodeHash = initCodeHash
	key.first, key.second = types.SortAssets(a, b)

	c.mu.Lock()
	if addr, ok := c.addrs[key]; ok {
		c.hits++
		c.mu.Unlock()
		c.metrics.Hits.Inc()
		return addr, nil
	}
	c.mu.Unlock()

	// Concurrent misses for the same pair derive the same address, so the
	// duplicate store below is harmless.
	addr, err := Derive(factory, initCodeHash, a, b)
	if err != nil {
		return Address{}, err
	}

	c.mu.Lock()
	c.addrs[key] = addr
	c.misses++
	size := len(c.addrs)
	c.mu.Unlock()

	c.metrics.Misses.Inc()
	c.metrics.Size.Set(float64(size))
	return addr, nil
}

// GetStats returns cache statistics.
func (c *Cache) GetStats() (hits, misses uint64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.addrs)
}

// Size returns the number of cached pair addresses.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.addrs)
}

// Clear drops all cached entries. Statistics reset with them.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addrs = make(map[pairKey]Address)
	c.hits = 0
	c.misses = 0
	c.metrics.Size.Set(0)
}
