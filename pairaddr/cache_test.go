package pairaddr_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crestswap/crest/pairaddr"
	"github.com/crestswap/crest/types"
)

func TestCacheLookup(t *testing.T) {
	cache := pairaddr.NewCache()
	factory := testFactory(t)
	initHash := testInitHash()
	a := testAsset(t, 1, "tokena")
	b := testAsset(t, 1, "tokenb")

	want, err := pairaddr.Derive(factory, initHash, a, b)
	require.NoError(t, err)

	addr, err := cache.Lookup(factory, initHash, a, b)
	require.NoError(t, err)
	require.Equal(t, want, addr)

	hits, misses, size := cache.GetStats()
	require.Equal(t, uint64(0), hits)
	require.Equal(t, uint64(1), misses)
	require.Equal(t, 1, size)

	addr, err = cache.Lookup(factory, initHash, a, b)
	require.NoError(t, err)
	require.Equal(t, want, addr)

	// Reversed argument order keys the same entry.
	addr, err = cache.Lookup(factory, initHash, b, a)
	require.NoError(t, err)
	require.Equal(t, want, addr)

	hits, misses, size = cache.GetStats()
	require.Equal(t, uint64(2), hits)
	require.Equal(t, uint64(1), misses)
	require.Equal(t, 1, size)
}

func TestCacheDistinctPairs(t *testing.T) {
	cache := pairaddr.NewCache()
	factory := testFactory(t)
	initHash := testInitHash()

	first, err := cache.Lookup(factory, initHash, testAsset(t, 1, "tokena"), testAsset(t, 1, "tokenb"))
	require.NoError(t, err)
	second, err := cache.Lookup(factory, initHash, testAsset(t, 1, "ucrest"), testAsset(t, 1, "uusd"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.Equal(t, 2, cache.Size())
}

func TestCacheInvalidNotCached(t *testing.T) {
	cache := pairaddr.NewCache()
	initHash := testInitHash()

	_, err := cache.Lookup(make([]byte, 5), initHash, testAsset(t, 1, "tokena"), testAsset(t, 1, "tokenb"))
	require.True(t, types.ErrInvalidAddress.Is(err))

	_, err = cache.Lookup(testFactory(t), initHash, testAsset(t, 1, "tokena"), testAsset(t, 1, "tokena"))
	require.True(t, types.ErrAssetMismatch.Is(err))

	hits, misses, size := cache.GetStats()
	require.Equal(t, uint64(0), hits)
	require.Equal(t, uint64(0), misses)
	require.Equal(t, 0, size)
}

func TestCacheClear(t *testing.T) {
	cache := pairaddr.NewCache()
	factory := testFactory(t)
	initHash := testInitHash()
	a := testAsset(t, 1, "tokena")
	b := testAsset(t, 1, "tokenb")

	_, err := cache.Lookup(factory, initHash, a, b)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Size())

	cache.Clear()
	require.Equal(t, 0, cache.Size())
	hits, misses, _ := cache.GetStats()
	require.Equal(t, uint64(0), hits)
	require.Equal(t, uint64(0), misses)

	_, err = cache.Lookup(factory, initHash, a, b)
	require.NoError(t, err)
	_, misses, _ = cache.GetStats()
	require.Equal(t, uint64(1), misses)
}

func TestCacheConcurrent(t *testing.T) {
	cache := pairaddr.NewCache()
	factory := testFactory(t)
	initHash := testInitHash()

	pairs := [][2]types.Asset{
		{testAsset(t, 1, "tokena"), testAsset(t, 1, "tokenb")},
		{testAsset(t, 1, "tokena"), testAsset(t, 1, "tokenc")},
		{testAsset(t, 1, "tokenb"), testAsset(t, 1, "tokenc")},
		{testAsset(t, 1, "ucrest"), testAsset(t, 1, "uusd")},
	}

	const goroutines = 16
	const lookups = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < lookups; i++ {
				pair := pairs[(seed+i)%len(pairs)]
				addr, err := cache.Lookup(factory, initHash, pair[0], pair[1])
				if err != nil {
					t.Errorf("lookup failed: %v", err)
					return
				}
				if addr == (pairaddr.Address{}) {
					t.Error("lookup returned zero address")
					return
				}
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, len(pairs), cache.Size())

	// Every lookup lands exactly one hit or one miss.
	hits, misses, _ := cache.GetStats()
	require.Equal(t, uint64(goroutines*lookups), hits+misses)
}
