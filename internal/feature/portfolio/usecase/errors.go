// Package usecase implements the business logic for the portfolio feature:
// the holding ledger, portfolio valuation, one-year performance and the
// diversification advisor.
package usecase

import "errors"

var (
	// ErrPortfolioNotFound is returned when the user has no portfolio yet.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrStockNotFound is returned when no stock exists for the given symbol.
	ErrStockNotFound = errors.New("stock not found")

	// ErrSymbolRequired is returned when an operation is missing the ticker symbol.
	ErrSymbolRequired = errors.New("stock symbol is required")

	// ErrInvalidQuantity is returned when an add carries a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")

	// ErrPriceUnavailable is returned when a held stock has never had a
	// price fetched; valuation refuses to treat a missing price as zero.
	ErrPriceUnavailable = errors.New("no current price for stock")
)
