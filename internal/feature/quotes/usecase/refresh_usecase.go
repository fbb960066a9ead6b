package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/shared/ratelimiter"
)

// StockPriceStore abstracts the stock rows the refresh job reads and writes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockPriceStore interface {
	// ListSymbols returns every known stock symbol.
	ListSymbols(ctx context.Context) ([]string, error)

	// UpdateCurrentPrice stores a freshly fetched price for a symbol.
	UpdateCurrentPrice(ctx context.Context, symbol string, price decimal.Decimal) error
}

// RefreshUsecase walks every known stock and refreshes its stored price
// from the market provider. It is run from the refresh command, outside
// the request path, so a stale price never costs a user-facing call.
type RefreshUsecase struct {
	market      MarketRepository
	store       StockPriceStore
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewRefreshUsecase creates a new RefreshUsecase instance.
func NewRefreshUsecase(market MarketRepository, store StockPriceStore, rl ratelimiter.RateLimiterInterface) *RefreshUsecase {
	return &RefreshUsecase{
		market:      market,
		store:       store,
		rateLimiter: rl,
	}
}

// RefreshAll fetches a fresh quote for every stored symbol and writes the
// price back. Per-symbol failures are logged and skipped so one bad
// symbol cannot stall the whole run; the error count is returned for the
// caller's exit status. The rate limiter paces the provider calls.
func (u *RefreshUsecase) RefreshAll(ctx context.Context) (updated, failed int, err error) {
	symbols, err := u.store.ListSymbols(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return updated, failed, err
		}

		u.rateLimiter.WaitIfNeeded()

		quote, err := u.market.GetQuote(ctx, symbol)
		if err != nil {
			slog.Error("refresh: fetch quote failed", "symbol", symbol, "error", err)
			failed++
			continue
		}
		if err := u.store.UpdateCurrentPrice(ctx, symbol, quote.Price); err != nil {
			slog.Error("refresh: store price failed", "symbol", symbol, "error", err)
			failed++
			continue
		}
		slog.Info("refresh: price updated", "symbol", symbol, "price", quote.Price)
		updated++
	}
	return updated, failed, nil
}
