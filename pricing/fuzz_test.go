package pricing_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/crestswap/crest/pricing"
	"github.com/crestswap/crest/types"
)

// FuzzQuoteOutput exercises the forward quoter with extreme values
func FuzzQuoteOutput(f *testing.F) {
	// Seeds: plain curve, dust boosted crossing, minimum, extreme skew
	f.Add(int64(100_000_000), int64(100_000_000), int64(1_000_000), uint32(30), uint64(1), uint64(1))
	f.Add(int64(98), int64(100), int64(10), uint32(30), uint64(11), uint64(28))
	f.Add(int64(1), int64(1), int64(1), uint32(0), uint64(1000), uint64(1))
	f.Add(int64(1)<<62, int64(1), int64(1)<<62, uint32(9999), uint64(500), uint64(500))

	f.Fuzz(func(t *testing.T, reserveA, reserveB, amountIn int64, feeBps uint32, boostLow, boostHigh uint64) {
		// Skip invalid inputs
		if reserveA < 0 || reserveB < 0 || amountIn < 0 {
			return
		}
		if feeBps > 10000 || boostLow < 1 || boostHigh < 1 {
			return
		}
		if boostLow > 1_000_000 || boostHigh > 1_000_000 {
			return
		}

		a, err := types.NewAsset(1, "tokena")
		require.NoError(t, err)
		b, err := types.NewAsset(1, "tokenb")
		require.NoError(t, err)

		pool, err := pricing.NewPool(
			types.Amount{Asset: a, Amount: math.NewInt(reserveA)},
			types.Amount{Asset: b, Amount: math.NewInt(reserveB)},
			types.CurveBoosted, feeBps, boostLow, boostHigh, types.SellEither,
		)
		require.NoError(t, err)

		// Quoting must never panic; failures must come from the taxonomy
		quote, next, err := pool.QuoteOutput(types.Amount{Asset: a, Amount: math.NewInt(amountIn)})
		if err != nil {
			require.True(t,
				types.ErrInsufficientInputAmount.Is(err) ||
					types.ErrInsufficientReserves.Is(err) ||
					types.ErrOverflow.Is(err),
				"unexpected error type: %v", err,
			)
			return
		}

		require.False(t, quote.AmountOut.Amount.IsNegative(), "output should not be negative")
		require.True(t, quote.AmountOut.Amount.LTE(math.NewInt(reserveB)), "output should not exceed reserve")
		require.False(t, next.ReserveA().Amount.IsNegative())
		require.False(t, next.ReserveB().Amount.IsNegative())
	})
}

// FuzzQuoteInput exercises the inverse quoter with extreme values
func FuzzQuoteInput(f *testing.F) {
	f.Add(int64(100_000_000), int64(100_000_000), int64(1_000_000), uint32(30), uint64(1), uint64(1))
	f.Add(int64(98), int64(100), int64(10), uint32(30), uint64(11), uint64(28))
	f.Add(int64(2), int64(2), int64(1), uint32(0), uint64(1000), uint64(1))

	f.Fuzz(func(t *testing.T, reserveA, reserveB, amountOut int64, feeBps uint32, boostLow, boostHigh uint64) {
		if reserveA < 0 || reserveB < 0 || amountOut < 0 {
			return
		}
		if feeBps > 10000 || boostLow < 1 || boostHigh < 1 {
			return
		}
		if boostLow > 1_000_000 || boostHigh > 1_000_000 {
			return
		}

		a, err := types.NewAsset(1, "tokena")
		require.NoError(t, err)
		b, err := types.NewAsset(1, "tokenb")
		require.NoError(t, err)

		pool, err := pricing.NewPool(
			types.Amount{Asset: a, Amount: math.NewInt(reserveA)},
			types.Amount{Asset: b, Amount: math.NewInt(reserveB)},
			types.CurveBoosted, feeBps, boostLow, boostHigh, types.SellEither,
		)
		require.NoError(t, err)

		quote, next, err := pool.QuoteInput(types.Amount{Asset: b, Amount: math.NewInt(amountOut)})
		if err != nil {
			require.True(t,
				types.ErrInsufficientInputAmount.Is(err) ||
					types.ErrInsufficientReserves.Is(err) ||
					types.ErrOverflow.Is(err),
				"unexpected error type: %v", err,
			)
			return
		}

		require.True(t, quote.AmountIn.Amount.IsPositive(), "required input should be positive")
		require.True(t, next.ReserveB().Amount.Equal(math.NewInt(reserveB-amountOut)))
	})
}

// FuzzComputeSqrtK checks the equilibrium solver stays within reserve bounds
func FuzzComputeSqrtK(f *testing.F) {
	f.Add(int64(98), int64(100), uint64(11), uint64(28))
	f.Add(int64(0), int64(0), uint64(1), uint64(1))
	f.Add(int64(1)<<62, int64(1), uint64(1000), uint64(1000))

	f.Fuzz(func(t *testing.T, reserveA, reserveB int64, boostLow, boostHigh uint64) {
		if reserveA < 0 || reserveB < 0 || boostLow < 1 || boostHigh < 1 {
			return
		}
		if boostLow > 1_000_000 || boostHigh > 1_000_000 {
			return
		}

		k := pricing.ComputeSqrtK(math.NewInt(reserveA), math.NewInt(reserveB), boostLow, boostHigh)

		lower, upper := reserveA, reserveB
		if lower > upper {
			lower, upper = upper, lower
		}
		require.True(t, k.LTE(math.NewInt(upper)), "K above max reserve")
		require.True(t, k.GTE(math.NewInt(lower).SubRaw(5)), "K more than 5 under min reserve")
	})
}

// FuzzMint checks share minting never panics and rejects dust deposits
func FuzzMint(f *testing.F) {
	f.Add(int64(1000), int64(1000), int64(0))
	f.Add(int64(1_000_000), int64(1_000_000), int64(0))
	f.Add(int64(500), int64(700), int64(1_000_000))

	f.Fuzz(func(t *testing.T, amountA, amountB, supply int64) {
		if amountA < 0 || amountB < 0 || supply < 0 {
			return
		}

		pool := cpPool(t, "1000000", "1000000", 30)
		if supply == 0 {
			pool = cpPool(t, "0", "0", 30)
		}

		a := testAsset(t, "tokena")
		b := testAsset(t, "tokenb")
		shares, err := pool.Mint(math.NewInt(supply),
			types.Amount{Asset: a, Amount: math.NewInt(amountA)},
			types.Amount{Asset: b, Amount: math.NewInt(amountB)},
		)
		if err != nil {
			require.True(t,
				types.ErrInsufficientInputAmount.Is(err) ||
					types.ErrInsufficientReserves.Is(err),
				"unexpected error type: %v", err,
			)
			return
		}
		require.True(t, shares.Amount.IsPositive())
		require.Equal(t, pool.ShareAsset(), shares.Asset)
	})
}
