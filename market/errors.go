package market

import "errors"

// Every rejected operation returns one of these sentinels (usually wrapped
// with context); callers match with errors.Is. None of them are fatal to the
// engine and all are raised before any state mutation.
var (
	// Validation failures.
	ErrInvalidOrder    = errors.New("invalid order")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrUnknownTeam     = errors.New("unknown team")

	// Catalog failures.
	ErrDuplicateSymbol = errors.New("symbol already listed")

	// Capacity failures.
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrInsufficientHoldings       = errors.New("insufficient holdings")
	ErrInsufficientMarketQuantity = errors.New("insufficient market quantity")

	// Circuit breaker.
	ErrPriceMovementExceeded = errors.New("price movement exceeds limit")

	// Session-state failures.
	ErrMarketClosed = errors.New("market closed")

	// Admin capability check failed.
	ErrUnauthorized = errors.New("unauthorized")
)
