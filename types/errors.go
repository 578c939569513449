package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors. Every failure in the pricing engine and its
// collaborators is one of these, possibly wrapped with call-site context.
// All of them are deterministic rejections: given the same inputs the same
// error is returned, and nothing is retryable.
var (
	ErrInvalidBoost            = errors.Register(ModuleName, 1, "invalid boost factor")
	ErrInvalidFee              = errors.Register(ModuleName, 2, "invalid fee")
	ErrAssetMismatch           = errors.Register(ModuleName, 3, "asset does not match pool")
	ErrInsufficientReserves    = errors.Register(ModuleName, 4, "insufficient reserves")
	ErrInsufficientInputAmount = errors.Register(ModuleName, 5, "insufficient input amount")
	ErrTradeNotSupported       = errors.Register(ModuleName, 6, "trade direction not supported")
	ErrInvalidAmount           = errors.Register(ModuleName, 7, "invalid amount")
	ErrInsufficientShares      = errors.Register(ModuleName, 8, "insufficient liquidity shares")
	ErrOverflow                = errors.Register(ModuleName, 9, "value exceeds 256-bit bound")
	ErrInvalidAddress          = errors.Register(ModuleName, 10, "invalid address")
	ErrRouteNotFound           = errors.Register(ModuleName, 11, "no route found")
	ErrInvalidRoute            = errors.Register(ModuleName, 12, "invalid route")
)
