package pricing

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/crestswap/crest/types"
)

// SpotPrice returns the marginal price of the given asset denominated in the
// pool's other asset: the exchange rate for an infinitesimal trade, fees
// excluded. For the boosted curve both virtual reserves include the
// artificial liquidity term of the currently active boost.
func (p Pool) SpotPrice(asset types.Asset) (math.LegacyDec, error) {
	reserve, err := p.ReserveOf(asset)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	other := p.reserveB
	if asset.Equal(p.reserveB.Asset) {
		other = p.reserveA
	}

	term := math.ZeroInt()
	if p.mode == types.CurveBoosted {
		boost := ActiveBoost(p.reserveA.Amount, p.reserveB.Amount, p.boostLow, p.boostHigh)
		term, err = ArtificialLiquidityTerm(boost, p.sqrtK)
		if err != nil {
			return math.LegacyZeroDec(), err
		}
	}

	num := new(big.Int).Add(other.Amount.BigInt(), term.BigInt())
	den := new(big.Int).Add(reserve.Amount.BigInt(), term.BigInt())
	if den.Sign() == 0 {
		return math.LegacyZeroDec(), types.ErrInsufficientReserves.Wrap("no depth on the priced side")
	}
	numInt, err := types.IntFromBig(num)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	denInt, err := types.IntFromBig(den)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	return math.LegacyNewDecFromInt(numInt).Quo(math.LegacyNewDecFromInt(denInt)), nil
}
