package pricing

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/crestswap/crest/types"
)

// ActiveBoost selects the boost governing the curve at the given reserves.
// The high boost applies while the first-ordered reserve holds at least as
// much as the second, the low boost otherwise. Equal reserves sit exactly on
// the boundary and use the high boost.
func ActiveBoost(reserveA, reserveB math.Int, boostLow, boostHigh uint64) uint64 {
	if reserveA.GTE(reserveB) {
		return boostHigh
	}
	return boostLow
}

// ComputeSqrtK solves for the equilibrium quantity of the boosted curve. With
// beta = activeBoost - 1, the virtual reserves (r0 + beta*K, r1 + beta*K)
// form a constant-product pool whose invariant is (activeBoost*K)^2, and K
// equals both reserves when the pool is balanced. The closed form, with floor
// division at every step:
//
//	term = (beta * (r0 + r1)) / (2 * (2*beta + 1))
//	K    = Isqrt(term^2 + r0*r1/(2*beta+1)) + term
//
// A boost of 1 degenerates to the geometric mean Isqrt(r0 * r1).
//
// Truncation can leave K a few units below the exact real root. Quoting
// inherits that drift; callers must not re-derive K with different rounding.
func ComputeSqrtK(reserveA, reserveB math.Int, boostLow, boostHigh uint64) math.Int {
	r0 := reserveA.BigInt()
	r1 := reserveB.BigInt()
	boost := ActiveBoost(reserveA, reserveB, boostLow, boostHigh)

	product := new(big.Int).Mul(r0, r1)
	if boost <= 1 {
		return math.NewIntFromBigInt(Isqrt(product))
	}

	beta := new(big.Int).SetUint64(boost - 1)
	denom := new(big.Int).Lsh(beta, 1)
	denom.Add(denom, big.NewInt(1)) // 2*beta + 1

	term := new(big.Int).Add(r0, r1)
	term.Mul(term, beta)
	term.Quo(term, new(big.Int).Lsh(denom, 1))

	inner := new(big.Int).Quo(product, denom)
	inner.Add(inner, new(big.Int).Mul(term, term))

	// K never exceeds the larger reserve, so the result always fits.
	k := Isqrt(inner)
	k.Add(k, term)
	return math.NewIntFromBigInt(k)
}

// ArtificialLiquidityTerm returns (boost - 1) * sqrtK, the synthetic depth
// added to both virtual reserves when pricing against the given boost.
func ArtificialLiquidityTerm(boost uint64, sqrtK math.Int) (math.Int, error) {
	if boost < types.MinBoost {
		return math.Int{}, types.ErrInvalidBoost.Wrapf("boost %d below minimum %d", boost, types.MinBoost)
	}
	if sqrtK.IsNil() || sqrtK.IsNegative() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("sqrtK must be non-negative")
	}
	return types.IntFromBig(boostTerm(boost, sqrtK.BigInt()))
}

// boostTerm is ArtificialLiquidityTerm on raw big.Int for the quoting hot
// path, where intermediates may exceed the bounded range.
func boostTerm(boost uint64, sqrtK *big.Int) *big.Int {
	if boost <= 1 {
		return new(big.Int)
	}
	term := new(big.Int).SetUint64(boost - 1)
	return term.Mul(term, sqrtK)
}
