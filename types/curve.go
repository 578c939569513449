package types

import "fmt"

// CurveMode selects the pricing invariant of a pool.
type CurveMode uint8

const (
	// CurveConstantProduct prices against x·y = k on the raw reserves.
	CurveConstantProduct CurveMode = iota
	// CurveBoosted prices against the boosted invariant: virtual reserves
	// carry an artificial liquidity term anchored at the equilibrium
	// quantity sqrtK.
	CurveBoosted
)

func (m CurveMode) String() string {
	switch m {
	case CurveConstantProduct:
		return "constant_product"
	case CurveBoosted:
		return "boosted"
	default:
		return fmt.Sprintf("curve(%d)", uint8(m))
	}
}

// Validate rejects unknown modes.
func (m CurveMode) Validate() error {
	if m > CurveBoosted {
		return ErrInvalidAmount.Wrapf("unknown curve mode %d", m)
	}
	return nil
}

// ParseCurveMode maps a config/CLI string onto a mode.
func ParseCurveMode(s string) (CurveMode, error) {
	switch s {
	case "constant_product", "xy", "cp":
		return CurveConstantProduct, nil
	case "boosted", "xybk":
		return CurveBoosted, nil
	default:
		return 0, ErrInvalidAmount.Wrapf("unknown curve mode %q", s)
	}
}

// TradeGate restricts which swap directions a pool accepts. Directions are
// named from the canonical asset order: SellOnlyA admits only trades whose
// input is the first-ordered asset.
type TradeGate uint8

const (
	SellEither TradeGate = iota
	SellOnlyA
	SellOnlyB
	SellNone
)

func (g TradeGate) String() string {
	switch g {
	case SellEither:
		return "sell_either"
	case SellOnlyA:
		return "sell_only_a"
	case SellOnlyB:
		return "sell_only_b"
	case SellNone:
		return "sell_none"
	default:
		return fmt.Sprintf("gate(%d)", uint8(g))
	}
}

// Validate rejects unknown gates.
func (g TradeGate) Validate() error {
	if g > SellNone {
		return ErrInvalidAmount.Wrapf("unknown trade gate %d", g)
	}
	return nil
}

// ParseTradeGate maps a config/CLI string onto a gate.
func ParseTradeGate(s string) (TradeGate, error) {
	switch s {
	case "sell_either", "both", "":
		return SellEither, nil
	case "sell_only_a", "only_a":
		return SellOnlyA, nil
	case "sell_only_b", "only_b":
		return SellOnlyB, nil
	case "sell_none", "none":
		return SellNone, nil
	default:
		return 0, ErrInvalidAmount.Wrapf("unknown trade gate %q", s)
	}
}

// AllowsInput reports whether the gate admits a trade selling the
// first-ordered asset (isAssetA true) or the second (false).
func (g TradeGate) AllowsInput(isAssetA bool) bool {
	switch g {
	case SellEither:
		return true
	case SellOnlyA:
		return isAssetA
	case SellOnlyB:
		return !isAssetA
	default:
		return false
	}
}
