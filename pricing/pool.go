package pricing

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/crestswap/crest/types"
)

// Pool is an immutable view of a two-asset market at one point in time.
// Construction validates and canonically orders the pair; quoting operations
// return the would-be next state as a fresh value and never mutate the
// receiver. The zero value is not a valid pool; use NewPool.
type Pool struct {
	reserveA  types.Amount
	reserveB  types.Amount
	mode      types.CurveMode
	feeBps    uint32
	boostLow  uint64
	boostHigh uint64
	gate      types.TradeGate
	sqrtK     math.Int
}

// NewPool validates the parameters and builds a pool snapshot. The two
// amounts may arrive in either order; the pair is stored canonically sorted.
// For the boosted curve the equilibrium quantity sqrtK is solved here, once,
// from the given reserves. A boosted pool whose boosts are both 1 prices
// identically to the plain product curve and is recorded as such; a
// constant-product pool records its boosts as 1 regardless of input.
func NewPool(amountA, amountB types.Amount, mode types.CurveMode, feeBps uint32, boostLow, boostHigh uint64, gate types.TradeGate) (Pool, error) {
	if err := amountA.Validate(); err != nil {
		return Pool{}, err
	}
	if err := amountB.Validate(); err != nil {
		return Pool{}, err
	}
	if err := types.ValidateAssetPair(amountA.Asset, amountB.Asset); err != nil {
		return Pool{}, err
	}
	if err := mode.Validate(); err != nil {
		return Pool{}, err
	}
	if err := gate.Validate(); err != nil {
		return Pool{}, err
	}
	if feeBps > types.MaxFeeBps {
		return Pool{}, types.ErrInvalidFee.Wrapf("fee %d exceeds maximum %d basis points", feeBps, types.MaxFeeBps)
	}
	if boostLow < types.MinBoost || boostHigh < types.MinBoost {
		return Pool{}, types.ErrInvalidBoost.Wrapf("boosts (%d, %d) below minimum %d", boostLow, boostHigh, types.MinBoost)
	}

	if amountB.Asset.Less(amountA.Asset) {
		amountA, amountB = amountB, amountA
	}
	if mode == types.CurveBoosted && boostLow == 1 && boostHigh == 1 {
		mode = types.CurveConstantProduct
	}
	if mode == types.CurveConstantProduct {
		boostLow, boostHigh = 1, 1
	}

	p := Pool{
		reserveA:  amountA,
		reserveB:  amountB,
		mode:      mode,
		feeBps:    feeBps,
		boostLow:  boostLow,
		boostHigh: boostHigh,
		gate:      gate,
		sqrtK:     math.ZeroInt(),
	}
	if mode == types.CurveBoosted {
		p.sqrtK = ComputeSqrtK(amountA.Amount, amountB.Amount, boostLow, boostHigh)
	}
	return p, nil
}

// next rebuilds the pool around updated reserves, re-solving the equilibrium
// for the new state. The amounts may arrive in either order.
func (p Pool) next(a, b types.Amount) (Pool, error) {
	return NewPool(a, b, p.mode, p.feeBps, p.boostLow, p.boostHigh, p.gate)
}

// ReserveA returns the reserve of the first-ordered asset.
func (p Pool) ReserveA() types.Amount { return p.reserveA }

// ReserveB returns the reserve of the second-ordered asset.
func (p Pool) ReserveB() types.Amount { return p.reserveB }

// Assets returns the pool's pair in canonical order.
func (p Pool) Assets() (types.Asset, types.Asset) {
	return p.reserveA.Asset, p.reserveB.Asset
}

// ShareAsset returns the synthetic asset denominating this pool's shares.
func (p Pool) ShareAsset() types.Asset {
	return types.ShareAsset(p.reserveA.Asset, p.reserveB.Asset)
}

// Involves reports whether the asset is one of the pool's pair.
func (p Pool) Involves(asset types.Asset) bool {
	return asset.Equal(p.reserveA.Asset) || asset.Equal(p.reserveB.Asset)
}

// ReserveOf returns the reserve held in the given asset.
func (p Pool) ReserveOf(asset types.Asset) (types.Amount, error) {
	switch {
	case asset.Equal(p.reserveA.Asset):
		return p.reserveA, nil
	case asset.Equal(p.reserveB.Asset):
		return p.reserveB, nil
	default:
		return types.Amount{}, types.ErrAssetMismatch.Wrapf("asset %s not in pool %s/%s", asset, p.reserveA.Asset, p.reserveB.Asset)
	}
}

// IsEmpty reports whether both reserves are zero.
func (p Pool) IsEmpty() bool {
	return p.reserveA.IsZero() && p.reserveB.IsZero()
}

// CurveMode returns the pricing curve in effect.
func (p Pool) CurveMode() types.CurveMode { return p.mode }

// TradeGate returns the directional trading restriction.
func (p Pool) TradeGate() types.TradeGate { return p.gate }

// FeeBps returns the swap fee in basis points.
func (p Pool) FeeBps() uint32 { return p.feeBps }

// Boosts returns the low and high boost parameters.
func (p Pool) Boosts() (low, high uint64) {
	return p.boostLow, p.boostHigh
}

// SqrtK returns the solved equilibrium quantity, zero for the plain product
// curve.
func (p Pool) SqrtK() math.Int { return p.sqrtK }

func (p Pool) String() string {
	return fmt.Sprintf("%s/%s mode=%s fee=%dbps boosts=(%d,%d) gate=%s reserves=(%s,%s)",
		p.reserveA.Asset, p.reserveB.Asset, p.mode, p.feeBps, p.boostLow, p.boostHigh, p.gate,
		p.reserveA.Amount, p.reserveB.Amount)
}
