package usecase

import (
	"context"

	"portfolio_backend/internal/feature/quotes/domain/entity"
)

// MarketRepository abstracts the market data provider for quote lookups.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetQuote fetches the latest quote for a symbol. It returns
	// domain.ErrNoData when the provider knows no such symbol and
	// domain.ErrUpstream when the provider itself failed.
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// QuoteUsecase provides quote lookups for the search endpoint.
type QuoteUsecase struct {
	market MarketRepository
}

// NewQuoteUsecase creates a new QuoteUsecase instance.
func NewQuoteUsecase(market MarketRepository) *QuoteUsecase {
	return &QuoteUsecase{market: market}
}

// GetQuote returns the latest quote for the given symbol.
func (u *QuoteUsecase) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	return u.market.GetQuote(ctx, symbol)
}
