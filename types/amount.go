package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// maxInt256 is the exclusive upper bound of the math.Int representation.
var maxInt256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Amount pairs an asset identity with a non-negative magnitude. The
// magnitude is a math.Int, so it is exact up to (but excluding) 2^256;
// arithmetic that could leave that range reports ErrOverflow instead of
// panicking.
type Amount struct {
	Asset  Asset
	Amount math.Int
}

// NewAmount constructs a validated amount.
func NewAmount(asset Asset, amount math.Int) (Amount, error) {
	a := Amount{Asset: asset, Amount: amount}
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}

// NewAmountFromString parses the magnitude in base 10.
func NewAmountFromString(asset Asset, s string) (Amount, error) {
	amt, ok := math.NewIntFromString(s)
	if !ok {
		return Amount{}, ErrInvalidAmount.Wrapf("cannot parse %q as an integer amount", s)
	}
	return NewAmount(asset, amt)
}

// ZeroAmount returns the zero magnitude of the given asset.
func ZeroAmount(asset Asset) Amount {
	return Amount{Asset: asset, Amount: math.ZeroInt()}
}

// Validate checks the asset identity and that the magnitude is present and
// non-negative.
func (a Amount) Validate() error {
	if err := a.Asset.Validate(); err != nil {
		return err
	}
	if a.Amount.IsNil() {
		return ErrInvalidAmount.Wrap("amount magnitude is nil")
	}
	if a.Amount.IsNegative() {
		return ErrInvalidAmount.Wrapf("amount cannot be negative: %s", a.Amount)
	}
	return nil
}

// Add returns a + b. Fails on mismatched assets or a result past the
// 256-bit bound.
func (a Amount) Add(b Amount) (Amount, error) {
	if !a.Asset.Equal(b.Asset) {
		return Amount{}, ErrAssetMismatch.Wrapf("cannot add %s to %s", b.Asset, a.Asset)
	}
	sum := new(big.Int).Add(a.Amount.BigInt(), b.Amount.BigInt())
	if sum.Cmp(maxInt256) >= 0 {
		return Amount{}, ErrOverflow.Wrapf("%s + %s", a.Amount, b.Amount)
	}
	return Amount{Asset: a.Asset, Amount: math.NewIntFromBigInt(sum)}, nil
}

// Sub returns a − b with underflow checking: the magnitude never goes
// negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if !a.Asset.Equal(b.Asset) {
		return Amount{}, ErrAssetMismatch.Wrapf("cannot subtract %s from %s", b.Asset, a.Asset)
	}
	if a.Amount.LT(b.Amount) {
		return Amount{}, ErrInvalidAmount.Wrapf("underflow: %s - %s", a.Amount, b.Amount)
	}
	return Amount{Asset: a.Asset, Amount: a.Amount.Sub(b.Amount)}, nil
}

// IsZero reports a zero magnitude.
func (a Amount) IsZero() bool {
	return !a.Amount.IsNil() && a.Amount.IsZero()
}

// IsPositive reports a strictly positive magnitude.
func (a Amount) IsPositive() bool {
	return !a.Amount.IsNil() && a.Amount.IsPositive()
}

func (a Amount) String() string {
	return fmt.Sprintf("%s%s", a.Amount, a.Asset)
}

// FitsInt reports whether a raw big integer is representable as math.Int.
func FitsInt(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(maxInt256) < 0
}

// IntFromBig converts a raw big integer into math.Int, reporting ErrOverflow
// for values outside the representable range.
func IntFromBig(v *big.Int) (math.Int, error) {
	if v.Sign() < 0 {
		return math.Int{}, ErrInvalidAmount.Wrapf("negative value %s", v)
	}
	if v.Cmp(maxInt256) >= 0 {
		return math.Int{}, ErrOverflow.Wrapf("value %s exceeds 2^256", v)
	}
	return math.NewIntFromBigInt(v), nil
}
