package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	quotedomain "portfolio_backend/internal/feature/quotes/domain"
)

// AnnualizedReturnNotApplicable is reported when the portfolio has no
// measurable value: an empty portfolio, or one where every holding was
// excluded for lack of data. The alternative is dividing by zero.
const AnnualizedReturnNotApplicable = "n/a"

// PerformanceReport summarizes one-year portfolio performance.
// Monetary fields are decimal strings with two fractional digits.
// Excluded lists the symbols that contributed to none of the figures
// because no usable year-ago close or current price existed for them,
// typically because the date one year back fell on a non-trading day.
type PerformanceReport struct {
	TotalValue       string
	TotalReturn      string
	AnnualizedReturn string
	Excluded         []string
}

// Performance computes the one-year performance of the owner's portfolio.
//
// For every holding with a current price P_now and a close P_then on the
// calendar date exactly one year before now:
//
//	return%     = (P_now - P_then) / P_then * 100
//	totalValue  += P_now * quantity
//	totalReturn += return% * quantity
//
// The aggregate annualized return is totalReturn / totalValue * 100,
// a quantity-weighted approximation rather than a true time-weighted
// figure. Holdings without a usable P_then or P_now are skipped and
// reported in Excluded. History lookups run sequentially, one provider
// call per holding.
func (u *portfolioUsecase) Performance(ctx context.Context, ownerID uint) (*PerformanceReport, error) {
	portfolio, err := u.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	oneYearAgo := u.now().AddDate(-1, 0, 0).Format("2006-01-02")

	totalValue := decimal.Zero
	totalReturn := decimal.Zero
	excluded := make([]string, 0)

	for _, h := range portfolio.Holdings {
		symbol := h.Stock.Symbol

		if !h.Stock.CurrentPrice.Valid {
			slog.Warn("holding excluded from performance: no current price", "symbol", symbol)
			excluded = append(excluded, symbol)
			continue
		}
		price := h.Stock.CurrentPrice.Decimal

		closes, err := u.market.GetDailyCloses(ctx, symbol)
		if err != nil {
			if errors.Is(err, quotedomain.ErrNoData) {
				slog.Warn("holding excluded from performance: no history", "symbol", symbol)
				excluded = append(excluded, symbol)
				continue
			}
			return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
		}

		then, ok := closes[oneYearAgo]
		if !ok || then.IsZero() {
			slog.Warn("holding excluded from performance: no close on date", "symbol", symbol, "date", oneYearAgo)
			excluded = append(excluded, symbol)
			continue
		}

		holdingReturn := price.Sub(then).Div(then).Mul(decimal.NewFromInt(100))
		totalValue = totalValue.Add(price.Mul(h.Quantity))
		totalReturn = totalReturn.Add(holdingReturn.Mul(h.Quantity))
	}

	report := &PerformanceReport{
		TotalValue:  totalValue.StringFixed(2),
		TotalReturn: totalReturn.StringFixed(2),
		Excluded:    excluded,
	}
	if totalValue.IsZero() {
		report.AnnualizedReturn = AnnualizedReturnNotApplicable
		return report, nil
	}
	report.AnnualizedReturn = totalReturn.Div(totalValue).Mul(decimal.NewFromInt(100)).StringFixed(2)
	return report, nil
}
