package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	quoteentity "portfolio_backend/internal/feature/quotes/domain/entity"
)

// PortfolioRepository abstracts the persistence layer for stocks,
// portfolios and holdings. Implementations must make AddHolding an atomic
// merge: two concurrent adds for the same stock may never lose an update.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PortfolioRepository interface {
	// UpsertStock creates or updates the stock identified by its symbol
	// and returns the stored row. On update only the display name and the
	// current price change; the sector is kept from the first insert.
	UpsertStock(ctx context.Context, stock *entity.Stock) (*entity.Stock, error)

	// FindStockBySymbol retrieves a stock by ticker symbol.
	// It returns ErrStockNotFound when no such stock exists.
	FindStockBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)

	// FindOrCreateByOwner returns the owner's portfolio, creating an
	// empty one when none exists yet.
	FindOrCreateByOwner(ctx context.Context, ownerID uint) (*entity.Portfolio, error)

	// FindByOwner returns the owner's portfolio with all holdings and
	// their stocks resolved. It returns ErrPortfolioNotFound when the
	// owner has no portfolio.
	FindByOwner(ctx context.Context, ownerID uint) (*entity.Portfolio, error)

	// AddHolding merges quantity into the holding for (portfolioID,
	// stockID), creating it when absent. The increment is atomic.
	AddHolding(ctx context.Context, portfolioID, stockID uint, quantity decimal.Decimal) error

	// RemoveHolding deletes the holding for (portfolioID, stockID).
	// Removing an absent holding is a no-op, not an error.
	RemoveHolding(ctx context.Context, portfolioID, stockID uint) error
}

// MarketRepository abstracts the market data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetQuote fetches the latest quote for a symbol.
	GetQuote(ctx context.Context, symbol string) (*quoteentity.Quote, error)

	// GetDailyCloses fetches the daily close history for a symbol,
	// keyed by "YYYY-MM-DD" date string.
	GetDailyCloses(ctx context.Context, symbol string) (map[string]decimal.Decimal, error)
}

// AddHoldingInput carries the parameters of an add-holding request.
// Name and Sector are optional; the provider has no endpoint for either,
// so they can only arrive from the caller.
type AddHoldingInput struct {
	Symbol   string
	Quantity decimal.Decimal
	Name     string
	Sector   string
}

// portfolioUsecase implements the portfolio business logic. All methods
// are pure functions of the stored ledger and the provider's quotes; the
// usecase itself holds no state beyond its dependencies.
type portfolioUsecase struct {
	repo   PortfolioRepository
	market MarketRepository
	now    func() time.Time
}

// NewPortfolioUsecase creates a new portfolioUsecase instance.
func NewPortfolioUsecase(repo PortfolioRepository, market MarketRepository) *portfolioUsecase {
	return &portfolioUsecase{
		repo:   repo,
		market: market,
		now:    time.Now,
	}
}

// AddHolding adds quantity of a stock to the owner's portfolio, creating
// the portfolio on first use. The stock row is upserted with the price
// fetched from the market provider, so every add refreshes the shared
// reference data. Persistence failures propagate to the caller.
func (u *portfolioUsecase) AddHolding(ctx context.Context, ownerID uint, in AddHoldingInput) error {
	if in.Symbol == "" {
		return ErrSymbolRequired
	}
	if !in.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}

	quote, err := u.market.GetQuote(ctx, in.Symbol)
	if err != nil {
		return fmt.Errorf("fetch quote for %s: %w", in.Symbol, err)
	}

	name := in.Name
	if name == "" {
		name = quote.Symbol
	}
	stock, err := u.repo.UpsertStock(ctx, &entity.Stock{
		Symbol:       quote.Symbol,
		Name:         name,
		Sector:       in.Sector,
		CurrentPrice: decimal.NewNullDecimal(quote.Price),
	})
	if err != nil {
		return fmt.Errorf("upsert stock %s: %w", in.Symbol, err)
	}

	portfolio, err := u.repo.FindOrCreateByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load portfolio for user %d: %w", ownerID, err)
	}

	if err := u.repo.AddHolding(ctx, portfolio.ID, stock.ID, in.Quantity); err != nil {
		return fmt.Errorf("add holding %s: %w", in.Symbol, err)
	}

	slog.Info("holding added", "user_id", ownerID, "symbol", stock.Symbol, "quantity", in.Quantity)
	return nil
}

// RemoveHolding deletes the holding for the given symbol from the
// owner's portfolio. An unknown symbol or missing portfolio is an error;
// a symbol that is known but not held is a no-op.
func (u *portfolioUsecase) RemoveHolding(ctx context.Context, ownerID uint, symbol string) error {
	if symbol == "" {
		return ErrSymbolRequired
	}

	stock, err := u.repo.FindStockBySymbol(ctx, symbol)
	if err != nil {
		return err
	}
	portfolio, err := u.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	if err := u.repo.RemoveHolding(ctx, portfolio.ID, stock.ID); err != nil {
		return fmt.Errorf("remove holding %s: %w", symbol, err)
	}

	slog.Info("holding removed", "user_id", ownerID, "symbol", symbol)
	return nil
}

// TotalValue returns the current market value of the owner's portfolio.
func (u *portfolioUsecase) TotalValue(ctx context.Context, ownerID uint) (decimal.Decimal, error) {
	portfolio, err := u.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	return PortfolioValue(portfolio.Holdings)
}

// PortfolioValue computes the sum of quantity * current price over the given
// holdings. A holding whose stock has no price makes the whole valuation
// fail with ErrPriceUnavailable; coercing an unknown price to zero would
// silently understate the portfolio.
func PortfolioValue(holdings []entity.Holding) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, h := range holdings {
		if !h.Stock.CurrentPrice.Valid {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceUnavailable, h.Stock.Symbol)
		}
		total = total.Add(h.Quantity.Mul(h.Stock.CurrentPrice.Decimal))
	}
	return total, nil
}
