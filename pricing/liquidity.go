package pricing

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/crestswap/crest/types"
)

// Mint computes the pool shares created by depositing the pair of amounts
// against the pool's current reserves and outstanding share supply.
//
// The first deposit into an empty pool mints the geometric mean of the two
// amounts less MinimumLiquidity, which is burned to keep the share price
// from being manipulated by a dust-sized first deposit. Later deposits mint
// proportionally, taking the smaller of the two per-side ratios so an
// unbalanced deposit donates its excess to the pool.
func (p Pool) Mint(totalSupply math.Int, amountA, amountB types.Amount) (types.Amount, error) {
	if totalSupply.IsNil() || totalSupply.IsNegative() {
		return types.Amount{}, types.ErrInvalidAmount.Wrap("total supply must be non-negative")
	}
	if err := amountA.Validate(); err != nil {
		return types.Amount{}, err
	}
	if err := amountB.Validate(); err != nil {
		return types.Amount{}, err
	}

	// Accept the deposit in either order.
	if amountA.Asset.Equal(p.reserveB.Asset) && amountB.Asset.Equal(p.reserveA.Asset) {
		amountA, amountB = amountB, amountA
	}
	if !amountA.Asset.Equal(p.reserveA.Asset) || !amountB.Asset.Equal(p.reserveB.Asset) {
		return types.Amount{}, types.ErrAssetMismatch.Wrapf("deposit %s/%s does not match pool %s/%s",
			amountA.Asset, amountB.Asset, p.reserveA.Asset, p.reserveB.Asset)
	}

	share := p.ShareAsset()

	if totalSupply.IsZero() {
		product := new(big.Int).Mul(amountA.Amount.BigInt(), amountB.Amount.BigInt())
		shares := Isqrt(product)
		shares.Sub(shares, big.NewInt(types.MinimumLiquidity))
		if shares.Sign() <= 0 {
			return types.Amount{}, types.ErrInsufficientInputAmount.Wrapf(
				"initial deposit mints no shares after burning %d minimum liquidity", types.MinimumLiquidity)
		}
		sharesInt, err := types.IntFromBig(shares)
		if err != nil {
			return types.Amount{}, err
		}
		return types.Amount{Asset: share, Amount: sharesInt}, nil
	}

	if p.IsEmpty() {
		return types.Amount{}, types.ErrInsufficientReserves.Wrap("pool has share supply but no reserves")
	}

	// Minimum over the sides that hold liquidity; a zero reserve side
	// places no bound on the mint.
	supply := totalSupply.BigInt()
	var shares *big.Int
	if !p.reserveA.IsZero() {
		shares = new(big.Int).Mul(amountA.Amount.BigInt(), supply)
		shares.Quo(shares, p.reserveA.Amount.BigInt())
	}
	if !p.reserveB.IsZero() {
		byB := new(big.Int).Mul(amountB.Amount.BigInt(), supply)
		byB.Quo(byB, p.reserveB.Amount.BigInt())
		if shares == nil || byB.Cmp(shares) < 0 {
			shares = byB
		}
	}
	if shares.Sign() <= 0 {
		return types.Amount{}, types.ErrInsufficientInputAmount.Wrap("deposit too small to mint shares")
	}
	sharesInt, err := types.IntFromBig(shares)
	if err != nil {
		return types.Amount{}, err
	}
	return types.Amount{Asset: share, Amount: sharesInt}, nil
}

// RedeemValue reports how much of one pool asset redeeming shareAmount of
// the outstanding supply is worth at current reserves.
//
// With the protocol fee switch on, the supply is first diluted by the fee
// shares accrued since kLast, the reserve product recorded at the last
// liquidity event: supply * (rootK - rootKLast) / (5*rootK + rootKLast),
// one sixth of the pool's growth.
func (p Pool) RedeemValue(asset types.Asset, totalSupply, shareAmount math.Int, feeOn bool, kLast math.Int) (types.Amount, error) {
	if totalSupply.IsNil() || totalSupply.IsNegative() {
		return types.Amount{}, types.ErrInvalidAmount.Wrap("total supply must be non-negative")
	}
	if shareAmount.IsNil() || shareAmount.IsNegative() {
		return types.Amount{}, types.ErrInvalidAmount.Wrap("share amount must be non-negative")
	}
	reserve, err := p.ReserveOf(asset)
	if err != nil {
		return types.Amount{}, err
	}
	if shareAmount.GT(totalSupply) {
		return types.Amount{}, types.ErrInsufficientShares.Wrapf("redeeming %s of %s outstanding",
			shareAmount, totalSupply)
	}
	if shareAmount.IsZero() {
		return types.ZeroAmount(asset), nil
	}

	supply := totalSupply.BigInt()
	if feeOn && !kLast.IsNil() && kLast.IsPositive() {
		rootK := Isqrt(new(big.Int).Mul(p.reserveA.Amount.BigInt(), p.reserveB.Amount.BigInt()))
		rootKLast := Isqrt(kLast.BigInt())
		if rootK.Cmp(rootKLast) > 0 {
			num := new(big.Int).Sub(rootK, rootKLast)
			num.Mul(num, supply)
			den := new(big.Int).Mul(rootK, big.NewInt(5))
			den.Add(den, rootKLast)
			supply.Add(supply, num.Quo(num, den))
		}
	}

	value := new(big.Int).Mul(shareAmount.BigInt(), reserve.Amount.BigInt())
	value.Quo(value, supply)
	valueInt, err := types.IntFromBig(value)
	if err != nil {
		return types.Amount{}, err
	}
	return types.Amount{Asset: asset, Amount: valueInt}, nil
}
