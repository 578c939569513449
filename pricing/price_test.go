package pricing_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/crestswap/crest/types"
)

func TestSpotPriceConstantProduct(t *testing.T) {
	pool := cpPool(t, "100", "50", 30)
	a := testAsset(t, "tokena")
	b := testAsset(t, "tokenb")

	// Price of A in B is the reserve ratio B/A.
	pa, err := pool.SpotPrice(a)
	require.NoError(t, err)
	require.True(t, pa.Equal(math.LegacyNewDecWithPrec(5, 1)), "got %s", pa)

	pb, err := pool.SpotPrice(b)
	require.NoError(t, err)
	require.True(t, pb.Equal(math.LegacyNewDec(2)), "got %s", pb)
}

func TestSpotPriceBoostedBalanced(t *testing.T) {
	// Virtual reserves are symmetric on a balanced pool, so the price is
	// exactly one whatever the boosts.
	pool := boostedPool(t, "100", "100", 30, 10, 10)

	price, err := pool.SpotPrice(testAsset(t, "tokena"))
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyOneDec()), "got %s", price)
}

func TestSpotPriceBoostedFlattens(t *testing.T) {
	// The artificial term dampens the raw 100/98 ratio toward one; the
	// boosted price sits strictly between one and the plain ratio.
	pool := boostedPool(t, "98000000000000000000", "100000000000000000000", 30, 11, 28)
	raw := math.LegacyNewDec(100).Quo(math.LegacyNewDec(98))

	price, err := pool.SpotPrice(testAsset(t, "tokena"))
	require.NoError(t, err)
	require.True(t, price.GT(math.LegacyOneDec()), "got %s", price)
	require.True(t, price.LT(raw), "got %s vs raw %s", price, raw)
}

func TestSpotPriceErrors(t *testing.T) {
	t.Run("foreign asset", func(t *testing.T) {
		pool := cpPool(t, "100", "50", 30)
		_, err := pool.SpotPrice(testAsset(t, "tokenc"))
		require.True(t, types.ErrAssetMismatch.Is(err))
	})

	t.Run("no depth", func(t *testing.T) {
		pool := cpPool(t, "0", "50", 30)
		_, err := pool.SpotPrice(testAsset(t, "tokena"))
		require.True(t, types.ErrInsufficientReserves.Is(err))
	})
}
