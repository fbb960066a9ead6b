package usecase

import (
	"context"
	"fmt"
	"sort"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
)

const (
	// minHoldings is the holding count below which the advisor recommends
	// adding more stocks.
	minHoldings = 10

	// maxSectorSharePercent is the sector share of the holding count above
	// which the advisor recommends reducing concentration. Shares are
	// measured by holding count, not by value-weighted exposure.
	maxSectorSharePercent = 20

	// unclassifiedSector buckets holdings whose stock has no sector tag.
	unclassifiedSector = "Unclassified"

	diversifyMessage       = "Consider diversifying your portfolio by adding more stocks. Aim for at least 10 different stocks."
	wellDiversifiedMessage = "Your portfolio is well-diversified. No immediate adjustments recommended."
	concentrationFormat    = "Reduce concentration in %s sector to below 20%% of your portfolio for better diversification."
)

// Suggestions returns rebalancing advice for the owner's portfolio.
func (u *portfolioUsecase) Suggestions(ctx context.Context, ownerID uint) ([]string, error) {
	portfolio, err := u.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return BuildSuggestions(portfolio.Holdings), nil
}

// BuildSuggestions computes diversification advice from a ledger
// snapshot. It always returns at least one entry: too-few-holdings and
// per-sector concentration warnings when they apply, otherwise a single
// reassurance message. Sectors are emitted in sorted order.
func BuildSuggestions(holdings []entity.Holding) []string {
	sectorCounts := make(map[string]int)
	for _, h := range holdings {
		sector := h.Stock.Sector
		if sector == "" {
			sector = unclassifiedSector
		}
		sectorCounts[sector]++
	}
	total := len(holdings)

	var suggestions []string
	if total < minHoldings {
		suggestions = append(suggestions, diversifyMessage)
	}

	sectors := make([]string, 0, len(sectorCounts))
	for sector := range sectorCounts {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	for _, sector := range sectors {
		// integer comparison of count/total > 20%, exact for any count
		if sectorCounts[sector]*100 > total*maxSectorSharePercent {
			suggestions = append(suggestions, fmt.Sprintf(concentrationFormat, sector))
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, wellDiversifiedMessage)
	}
	return suggestions
}
