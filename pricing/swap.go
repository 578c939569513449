package pricing

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/crestswap/crest/types"
)

// SwapQuote is the result of pricing a single trade against a pool snapshot.
// AmountOut is the deliverable output after clamping to the available
// reserve. IdealOut is the raw curve output before the clamp; it exceeds
// AmountOut only in drained low-liquidity states.
type SwapQuote struct {
	AmountIn  types.Amount
	AmountOut types.Amount
	IdealOut  math.Int
	FeeBps    uint32
}

// QuoteOutput prices an exact-input trade: given amountIn of one pool asset,
// it returns the deliverable amount of the other asset and the pool state
// the trade would leave behind.
//
// For the boosted curve a trade that pushes the in-side reserve past the
// equilibrium quantity sqrtK switches from the near boost to the far one; a
// trade that straddles the midpoint on a pool with unequal boosts is settled
// in two segments, first to (sqrtK, sqrtK) and then on the far boost. All
// divisions floor, so rounding always favors the pool.
//
// Intermediates are computed on raw big.Int; a result that cannot be
// materialized in 256 bits returns ErrOverflow.
func (p Pool) QuoteOutput(amountIn types.Amount) (SwapQuote, Pool, error) {
	if err := amountIn.Validate(); err != nil {
		return SwapQuote{}, Pool{}, err
	}

	// Determine direction and apply the gate before touching reserves.
	isAssetA := amountIn.Asset.Equal(p.reserveA.Asset)
	if !isAssetA && !amountIn.Asset.Equal(p.reserveB.Asset) {
		return SwapQuote{}, Pool{}, types.ErrAssetMismatch.Wrapf("asset %s not in pool %s/%s",
			amountIn.Asset, p.reserveA.Asset, p.reserveB.Asset)
	}
	if !p.gate.AllowsInput(isAssetA) {
		return SwapQuote{}, Pool{}, types.ErrTradeNotSupported.Wrapf("gate %s rejects selling %s",
			p.gate, amountIn.Asset)
	}
	if p.IsEmpty() {
		return SwapQuote{}, Pool{}, types.ErrInsufficientReserves.Wrap("pool has no reserves")
	}

	reserveIn, reserveOut := p.reserveA, p.reserveB
	if !isAssetA {
		reserveIn, reserveOut = p.reserveB, p.reserveA
	}

	// The whole computation is scaled by the fee denominator: postFee
	// carries amountIn * (10000 - fee) and reserve comparisons multiply
	// through by 10000, so no precision is lost to the fee cut.
	feeDenom := big.NewInt(types.FeeDenominator)
	postFee := new(big.Int).SetUint64(uint64(types.FeeDenominator - p.feeBps))
	postFee.Mul(postFee, amountIn.Amount.BigInt())
	if postFee.Sign() == 0 {
		return SwapQuote{}, Pool{}, types.ErrInsufficientInputAmount.Wrap("input after fees is zero")
	}

	ri := reserveIn.Amount.BigInt()
	ro := reserveOut.Amount.BigInt()
	term := new(big.Int)
	outFirst := new(big.Int)

	if p.mode == types.CurveBoosted {
		k := p.sqrtK.BigInt()

		// The trade crosses the midpoint when the post-fee input pushes
		// the in-side reserve to sqrtK or beyond.
		lhs := new(big.Int).Mul(ri, feeDenom)
		lhs.Add(lhs, postFee)
		rhs := new(big.Int).Mul(k, feeDenom)

		if lhs.Cmp(rhs) >= 0 {
			boost := p.boostHigh
			if !isAssetA {
				boost = p.boostLow
			}
			if k.Cmp(ri) > 0 && p.boostLow != p.boostHigh {
				// Straddling trade: settle the near segment to
				// (sqrtK, sqrtK), then price the rest on the far boost.
				outFirst.Sub(ro, k)
				spent := new(big.Int).Sub(k, ri)
				spent.Mul(spent, feeDenom)
				postFee.Sub(postFee, spent)
				ri = k
				ro = k
			}
			term = boostTerm(boost, k)
		} else {
			boost := p.boostLow
			if !isAssetA {
				boost = p.boostHigh
			}
			term = boostTerm(boost, k)
		}
	}

	// Constant-product form over the virtual reserves (reserve + term).
	num := new(big.Int).Add(ro, term)
	num.Mul(num, postFee)
	den := new(big.Int).Add(ri, term)
	den.Mul(den, feeDenom)
	den.Add(den, postFee)
	lastOut := num.Quo(num, den)

	ideal := new(big.Int).Add(outFirst, lastOut)
	clamped := new(big.Int).Set(outFirst)
	if lastOut.Cmp(ro) > 0 {
		clamped.Add(clamped, ro)
	} else {
		clamped.Add(clamped, lastOut)
	}
	if clamped.Sign() == 0 {
		return SwapQuote{}, Pool{}, types.ErrInsufficientInputAmount.Wrap("computed output is zero")
	}

	outInt, err := types.IntFromBig(clamped)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	idealInt, err := types.IntFromBig(ideal)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	amountOut := types.Amount{Asset: reserveOut.Asset, Amount: outInt}

	newIn, err := reserveIn.Add(amountIn)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	newOut, err := reserveOut.Sub(amountOut)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	next, err := p.next(newIn, newOut)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}

	quote := SwapQuote{
		AmountIn:  amountIn,
		AmountOut: amountOut,
		IdealOut:  idealInt,
		FeeBps:    p.feeBps,
	}
	return quote, next, nil
}

// QuoteInput prices an exact-output trade: given the desired amountOut of
// one pool asset, it returns the input of the other asset required to buy
// it and the pool state the trade would leave behind.
//
// The required input rounds up exactly once, after the fee gross-up, so the
// quote is the smallest input whose own QuoteOutput delivers at least
// amountOut.
func (p Pool) QuoteInput(amountOut types.Amount) (SwapQuote, Pool, error) {
	if err := amountOut.Validate(); err != nil {
		return SwapQuote{}, Pool{}, err
	}

	isAssetAOut := amountOut.Asset.Equal(p.reserveA.Asset)
	if !isAssetAOut && !amountOut.Asset.Equal(p.reserveB.Asset) {
		return SwapQuote{}, Pool{}, types.ErrAssetMismatch.Wrapf("asset %s not in pool %s/%s",
			amountOut.Asset, p.reserveA.Asset, p.reserveB.Asset)
	}

	// The input side is the opposite asset; the gate keys off the input.
	isAssetAIn := !isAssetAOut
	if !p.gate.AllowsInput(isAssetAIn) {
		return SwapQuote{}, Pool{}, types.ErrTradeNotSupported.Wrapf("gate %s rejects buying %s",
			p.gate, amountOut.Asset)
	}
	if p.IsEmpty() {
		return SwapQuote{}, Pool{}, types.ErrInsufficientReserves.Wrap("pool has no reserves")
	}

	reserveIn, reserveOut := p.reserveA, p.reserveB
	if isAssetAOut {
		reserveIn, reserveOut = p.reserveB, p.reserveA
	}
	if amountOut.Amount.GTE(reserveOut.Amount) {
		return SwapQuote{}, Pool{}, types.ErrInsufficientReserves.Wrapf("requested output %s not below reserve %s",
			amountOut.Amount, reserveOut.Amount)
	}
	if p.feeBps >= types.FeeDenominator {
		return SwapQuote{}, Pool{}, types.ErrInsufficientInputAmount.Wrap("fee consumes the entire input")
	}

	feeDenom := big.NewInt(types.FeeDenominator)
	ri := reserveIn.Amount.BigInt()
	ro := reserveOut.Amount.BigInt()
	remaining := amountOut.Amount.BigInt()
	scaledFirst := new(big.Int)
	term := new(big.Int)

	if p.mode == types.CurveBoosted {
		k := p.sqrtK.BigInt()

		// Crossing when the out-side reserve would finish strictly below
		// the equilibrium quantity.
		endOut := new(big.Int).Sub(ro, remaining)
		if k.Cmp(endOut) > 0 {
			boost := p.boostHigh
			if !isAssetAIn {
				boost = p.boostLow
			}
			if ro.Cmp(k) > 0 && p.boostLow != p.boostHigh {
				// Straddle: charge the stretch to (sqrtK, sqrtK) at par,
				// then price the remainder on the in-side boost.
				scaledFirst.Sub(k, ri)
				scaledFirst.Mul(scaledFirst, feeDenom)
				remaining.Sub(remaining, new(big.Int).Sub(ro, k))
				ri = k
				ro = k
			}
			term = boostTerm(boost, k)
		} else {
			boost := p.boostLow
			if !isAssetAIn {
				boost = p.boostHigh
			}
			term = boostTerm(boost, k)
		}
	}

	num := new(big.Int).Add(ri, term)
	num.Mul(num, remaining)
	num.Mul(num, feeDenom)
	den := new(big.Int).Add(ro, term)
	den.Sub(den, remaining)
	scaled := num.Quo(num, den)
	scaled.Add(scaled, scaledFirst)

	// Gross up for the fee and round against the taker exactly once.
	required := scaled.Quo(scaled, new(big.Int).SetUint64(uint64(types.FeeDenominator-p.feeBps)))
	required.Add(required, big.NewInt(1))

	requiredInt, err := types.IntFromBig(required)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	amountIn := types.Amount{Asset: reserveIn.Asset, Amount: requiredInt}

	newIn, err := reserveIn.Add(amountIn)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	newOut, err := reserveOut.Sub(amountOut)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}
	next, err := p.next(newIn, newOut)
	if err != nil {
		return SwapQuote{}, Pool{}, err
	}

	quote := SwapQuote{
		AmountIn:  amountIn,
		AmountOut: amountOut,
		IdealOut:  amountOut.Amount,
		FeeBps:    p.feeBps,
	}
	return quote, next, nil
}
