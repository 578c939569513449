package types

const (
	// ModuleName defines the module name, used as the error codespace and
	// the prefix of derived share denominations.
	ModuleName = "amm"

	// FeeDenominator is the basis-point scale: a feeBps of 30 charges 0.30%.
	FeeDenominator = 10000

	// MaxFeeBps is the largest permitted swap fee (100%).
	MaxFeeBps = 10000

	// MinBoost is the smallest permitted boost factor. A boost of 1 leaves
	// the curve at plain constant product.
	MinBoost = 1

	// MinimumLiquidity is burned out of the first mint of a pool so the
	// share price cannot be manipulated by seeding dust liquidity.
	MinimumLiquidity = 1000

	// ShareDenomPrefix prefixes the synthetic denomination of pool-share
	// amounts, followed by the two ordered asset denoms.
	ShareDenomPrefix = ModuleName + "/share"
)
