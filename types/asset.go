package types

import (
	"fmt"
	"strings"
)

// Asset identifies one side of a pool: an opaque denomination plus the ID of
// the chain it lives on. Assets compare by denom first so that canonical
// pair ordering is chain-independent; the chain ID only breaks exact-denom
// ties and gates pool construction (both sides must share a chain).
type Asset struct {
	ChainID uint32
	Denom   string
}

// NewAsset constructs a validated asset identity.
func NewAsset(chainID uint32, denom string) (Asset, error) {
	a := Asset{ChainID: chainID, Denom: denom}
	if err := a.Validate(); err != nil {
		return Asset{}, err
	}
	return a, nil
}

// Validate checks that the denomination is usable as an identity.
func (a Asset) Validate() error {
	if a.Denom == "" {
		return ErrInvalidAmount.Wrap("asset denom cannot be empty")
	}
	if strings.ContainsAny(a.Denom, " \t\n") {
		return ErrInvalidAmount.Wrapf("asset denom %q contains whitespace", a.Denom)
	}
	return nil
}

// Equal reports whether two identities are the same asset.
func (a Asset) Equal(b Asset) bool {
	return a.ChainID == b.ChainID && a.Denom == b.Denom
}

// Less defines the total order used for canonical pair ordering.
func (a Asset) Less(b Asset) bool {
	if a.Denom != b.Denom {
		return a.Denom < b.Denom
	}
	return a.ChainID < b.ChainID
}

// IsZero reports whether the asset is the zero value.
func (a Asset) IsZero() bool {
	return a.ChainID == 0 && a.Denom == ""
}

func (a Asset) String() string {
	if a.ChainID == 0 {
		return a.Denom
	}
	return fmt.Sprintf("%s@%d", a.Denom, a.ChainID)
}

// SortAssets returns the pair in canonical order, smaller identity first.
func SortAssets(a, b Asset) (Asset, Asset) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

// ValidateAssetPair checks that two assets can form a pool: distinct
// identities on the same chain.
func ValidateAssetPair(a, b Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.Equal(b) {
		return ErrAssetMismatch.Wrapf("pool assets must differ, got %s twice", a)
	}
	if a.ChainID != b.ChainID {
		return ErrAssetMismatch.Wrapf("assets on different chains: %s vs %s", a, b)
	}
	return nil
}

// ShareAsset derives the pool-share identity for an asset pair. The
// derivation is order-insensitive: both orderings of the same pair yield the
// same share asset.
func ShareAsset(a, b Asset) Asset {
	first, second := SortAssets(a, b)
	return Asset{
		ChainID: first.ChainID,
		Denom:   fmt.Sprintf("%s/%s/%s", ShareDenomPrefix, first.Denom, second.Denom),
	}
}
