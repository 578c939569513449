package pricing

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/crestswap/crest/types"
)

// Isqrt returns the integer square root of n: the largest r with r*r <= n.
// It panics if n is negative, mirroring big.Int.Sqrt.
//
// The search runs on raw big.Int because callers feed it products of two
// 256-bit reserves, which do not fit the bounded integer type.
func Isqrt(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		panic("integer square root of negative value")
	}

	// (n >> 5) + 8 bounds the root for every non-negative n, so the
	// binary search never excludes the answer.
	lo := new(big.Int)
	hi := new(big.Int).Rsh(n, 5)
	hi.Add(hi, big.NewInt(8))

	one := big.NewInt(1)
	mid := new(big.Int)
	sq := new(big.Int)
	for lo.Cmp(hi) < 0 {
		mid.Add(lo, hi)
		mid.Add(mid, one)
		mid.Rsh(mid, 1)
		sq.Mul(mid, mid)
		if sq.Cmp(n) <= 0 {
			lo.Set(mid)
		} else {
			hi.Sub(mid, one)
		}
	}
	return lo
}

// IsqrtInt is Isqrt over the bounded integer type. The root of a valid
// value always fits, so the only failure mode is a negative or nil input.
func IsqrtInt(n math.Int) (math.Int, error) {
	if n.IsNil() || n.IsNegative() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("integer square root requires a non-negative value")
	}
	return math.NewIntFromBigInt(Isqrt(n.BigInt())), nil
}
