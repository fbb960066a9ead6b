// Package handler provides the HTTP handlers for the quotes feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/quotes/domain"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/usecase"
)

// QuoteUsecase defines the usecase surface for quote lookups.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type QuoteUsecase interface {
	// GetQuote returns the latest quote for the given symbol.
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// QuoteHandler handles HTTP requests for quote lookups.
type QuoteHandler struct {
	quotes QuoteUsecase
}

// NewQuoteHandler creates a new QuoteHandler instance.
func NewQuoteHandler(quotes QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Search handles GET /stock/search?symbol=X.
func (h *QuoteHandler) Search(c *gin.Context) {
	symbol := c.Query("symbol")

	quote, err := h.quotes.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		slog.Warn("quote search failed", "symbol", symbol, "error", err, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrSymbolRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrNoData):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stock information not found"})
		case errors.Is(err, domain.ErrUpstream):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market data provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.QuoteResponse{
		Symbol:           quote.Symbol,
		Open:             quote.Open.String(),
		High:             quote.High.String(),
		Low:              quote.Low.String(),
		Price:            quote.Price.String(),
		Volume:           quote.Volume,
		LatestTradingDay: quote.LatestTradingDay,
		PreviousClose:    quote.PreviousClose.String(),
		Change:           quote.Change.String(),
		ChangePercent:    quote.ChangePercent,
	})
}
