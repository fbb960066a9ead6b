package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	quotedomain "portfolio_backend/internal/feature/quotes/domain"
)

// fixedNow pins the clock so the year-ago lookup date is deterministic.
// One year before 2026-08-29 is 2025-08-29.
var fixedNow = func() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func newPerformanceUsecase(repo PortfolioRepository, market MarketRepository) *portfolioUsecase {
	uc := NewPortfolioUsecase(repo, market)
	uc.now = fixedNow
	return uc
}

func TestPortfolioUsecase_Performance(t *testing.T) {
	ctx := context.Background()

	t.Run("single holding", func(t *testing.T) {
		// 10 shares now at 110, year-ago close 100:
		// value 1100.00, return 10% x 10 shares = 100.00, annualized 9.09
		repo := &mockPortfolioRepository{
			FindByOwnerFunc: func(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
				return &entity.Portfolio{ID: 1, OwnerID: ownerID, Holdings: []entity.Holding{
					holding("AAPL", "Technology", 10, 110),
				}}, nil
			},
		}
		market := &mockMarketRepository{
			GetDailyClosesFunc: func(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
				return map[string]decimal.Decimal{"2025-08-29": decimal.NewFromInt(100)}, nil
			},
		}
		uc := newPerformanceUsecase(repo, market)

		report, err := uc.Performance(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.TotalValue != "1100.00" {
			t.Errorf("TotalValue = %q, want 1100.00", report.TotalValue)
		}
		if report.TotalReturn != "100.00" {
			t.Errorf("TotalReturn = %q, want 100.00", report.TotalReturn)
		}
		if report.AnnualizedReturn != "9.09" {
			t.Errorf("AnnualizedReturn = %q, want 9.09", report.AnnualizedReturn)
		}
		if len(report.Excluded) != 0 {
			t.Errorf("Excluded = %v, want empty", report.Excluded)
		}
	})

	t.Run("holding without history is excluded and disclosed", func(t *testing.T) {
		repo := &mockPortfolioRepository{
			FindByOwnerFunc: func(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
				return &entity.Portfolio{ID: 1, OwnerID: ownerID, Holdings: []entity.Holding{
					holding("AAPL", "Technology", 10, 110),
					holding("IPO", "Technology", 5, 50),
				}}, nil
			},
		}
		market := &mockMarketRepository{
			GetDailyClosesFunc: func(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
				if symbol == "IPO" {
					return nil, quotedomain.ErrNoData
				}
				return map[string]decimal.Decimal{"2025-08-29": decimal.NewFromInt(100)}, nil
			},
		}
		uc := newPerformanceUsecase(repo, market)

		report, err := uc.Performance(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// IPO contributes to nothing; figures match the AAPL-only case
		if report.TotalValue != "1100.00" {
			t.Errorf("TotalValue = %q, want 1100.00", report.TotalValue)
		}
		if len(report.Excluded) != 1 || report.Excluded[0] != "IPO" {
			t.Errorf("Excluded = %v, want [IPO]", report.Excluded)
		}
	})

	t.Run("no close on the year-ago date is excluded", func(t *testing.T) {
		repo := &mockPortfolioRepository{
			FindByOwnerFunc: func(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
				return &entity.Portfolio{ID: 1, OwnerID: ownerID, Holdings: []entity.Holding{
					holding("AAPL", "Technology", 10, 110),
				}}, nil
			},
		}
		market := &mockMarketRepository{
			GetDailyClosesFunc: func(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
				// history exists but not for 2025-08-29
				return map[string]decimal.Decimal{"2025-08-28": decimal.NewFromInt(100)}, nil
			},
		}
		uc := newPerformanceUsecase(repo, market)

		report, err := uc.Performance(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.AnnualizedReturn != AnnualizedReturnNotApplicable {
			t.Errorf("AnnualizedReturn = %q, want %q", report.AnnualizedReturn, AnnualizedReturnNotApplicable)
		}
		if len(report.Excluded) != 1 || report.Excluded[0] != "AAPL" {
			t.Errorf("Excluded = %v, want [AAPL]", report.Excluded)
		}
	})

	t.Run("holding without current price is excluded", func(t *testing.T) {
		repo := &mockPortfolioRepository{
			FindByOwnerFunc: func(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
				return &entity.Portfolio{ID: 1, OwnerID: ownerID, Holdings: []entity.Holding{
					{Stock: entity.Stock{Symbol: "NEW"}, Quantity: decimal.NewFromInt(1)},
				}}, nil
			},
		}
		market := &mockMarketRepository{
			GetDailyClosesFunc: func(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
				t.Error("GetDailyCloses should not be called for a holding without a price")
				return nil, nil
			},
		}
		uc := newPerformanceUsecase(repo, market)

		report, err := uc.Performance(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Excluded) != 1 || report.Excluded[0] != "NEW" {
			t.Errorf("Excluded = %v, want [NEW]", report.Excluded)
		}
	})

	t.Run("empty portfolio reports n/a", func(t *testing.T) {
		repo := &mockPortfolioRepository{
			FindByOwnerFunc: func(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
				return &entity.Portfolio{ID: 1, OwnerID: ownerID}, nil
			},
		}
		uc := newPerformanceUsecase(repo, &mockMarketRepository{})

		report, err := uc.Performance(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.TotalValue != "0.00" {
			t.Errorf("TotalValue = %q, want 0.00", report.TotalValue)
		}
		if report.AnnualizedReturn != AnnualizedReturnNotApplicable {
			t.Errorf("AnnualizedReturn = %q, want %q", report.AnnualizedReturn, AnnualizedReturnNotApplicable)
		}
	})

	t.Run("upstream failure aborts the report", func(t *testing.T) {
		repo := &mockPortfolioRepository{
			FindByOwnerFunc: func(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
				return &entity.Portfolio{ID: 1, OwnerID: ownerID, Holdings: []entity.Holding{
					holding("AAPL", "Technology", 10, 110),
				}}, nil
			},
		}
		market := &mockMarketRepository{
			GetDailyClosesFunc: func(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
				return nil, quotedomain.ErrUpstream
			},
		}
		uc := newPerformanceUsecase(repo, market)

		_, err := uc.Performance(ctx, 1)
		if !errors.Is(err, quotedomain.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("no portfolio", func(t *testing.T) {
		uc := newPerformanceUsecase(&mockPortfolioRepository{}, &mockMarketRepository{})

		_, err := uc.Performance(ctx, 1)
		if !errors.Is(err, ErrPortfolioNotFound) {
			t.Errorf("expected ErrPortfolioNotFound, got %v", err)
		}
	})
}
