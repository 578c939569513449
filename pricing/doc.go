// Package pricing implements the swap and liquidity arithmetic of the
// exchange.
//
// The package is a pure calculation engine: it performs no I/O, holds no
// locks, and never mutates a pool in place. Every operation takes a Pool
// snapshot and returns results plus the snapshot the operation would leave
// behind, so callers can chain quotes or throw them away freely.
//
// # Curves
//
// Constant Product: the classic x*y=k curve. Output for an input dx at fee f
// is dy = (dx*(1-f)*y) / (x + dx*(1-f)), truncated.
//
// Boosted: virtual reserves stretch both sides of the book around an
// equilibrium quantity sqrtK, concentrating depth near the current price.
// Each half of the book carries its own boost; trades that cross the
// midpoint re-price on the far side's boost, and trades that straddle it on
// a pool with unequal boosts settle in two segments.
//
// # Integer Discipline
//
// All hot-path arithmetic runs on integers. Division always truncates toward
// zero and happens in a fixed order, so two implementations of these
// formulas agree bit for bit. Rounding is pool-favoring throughout:
// exact-input quotes round the output down, exact-output quotes round the
// required input up, once.
//
// Intermediates use raw big.Int and may exceed 256 bits; results are checked
// on conversion back to the bounded integer type and report ErrOverflow
// rather than wrapping or panicking.
//
// # Key Types
//
// Pool: immutable snapshot of a two-asset market. Validates and canonically
// orders its pair at construction and solves sqrtK once for boosted pools.
//
// SwapQuote: priced trade with the clamped deliverable output, the raw curve
// output, and the fee applied.
//
// # Usage
//
// Quoting a trade:
//
//	quote, next, err := pool.QuoteOutput(amountIn)
//
// Sizing an exact-output trade:
//
//	quote, next, err := pool.QuoteInput(amountOut)
//
// Valuing liquidity:
//
//	shares, err := pool.Mint(totalSupply, amountA, amountB)
//	value, err := pool.RedeemValue(asset, totalSupply, shares, feeOn, kLast)
package pricing
