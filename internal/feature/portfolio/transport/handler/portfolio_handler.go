// Package handler provides the HTTP handlers for the portfolio feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/portfolio/usecase"
	quotedomain "portfolio_backend/internal/feature/quotes/domain"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// PortfolioUsecase defines the usecase surface for portfolio operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PortfolioUsecase interface {
	// AddHolding adds quantity of a stock to the owner's portfolio.
	AddHolding(ctx context.Context, ownerID uint, in usecase.AddHoldingInput) error
	// RemoveHolding deletes a holding by symbol from the owner's portfolio.
	RemoveHolding(ctx context.Context, ownerID uint, symbol string) error
	// Performance computes the one-year performance report.
	Performance(ctx context.Context, ownerID uint) (*usecase.PerformanceReport, error)
	// Suggestions returns diversification advice.
	Suggestions(ctx context.Context, ownerID uint) ([]string, error)
}

// PortfolioHandler handles HTTP requests for portfolio operations.
type PortfolioHandler struct {
	portfolio PortfolioUsecase
}

// NewPortfolioHandler creates a new PortfolioHandler instance.
func NewPortfolioHandler(portfolio PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// userID extracts the authenticated user ID set by the JWT middleware.
func userID(c *gin.Context) (uint, bool) {
	uid := c.GetUint(jwtmw.ContextUserID)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return uid, true
}

// AddHolding handles POST /portfolio.
func (h *PortfolioHandler) AddHolding(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req api.AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add holding validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.AddHoldingInput{
		Symbol:   req.Symbol,
		Quantity: decimal.NewFromFloat(req.Quantity),
		Name:     req.Name,
		Sector:   req.Sector,
	}
	if err := h.portfolio.AddHolding(c.Request.Context(), uid, in); err != nil {
		h.respondError(c, err, "add holding failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "stock added to portfolio"})
}

// RemoveHolding handles DELETE /portfolio/:symbol.
func (h *PortfolioHandler) RemoveHolding(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	symbol := c.Param("symbol")
	if err := h.portfolio.RemoveHolding(c.Request.Context(), uid, symbol); err != nil {
		h.respondError(c, err, "remove holding failed")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "stock removed from portfolio"})
}

// Performance handles GET /portfolio/performance.
func (h *PortfolioHandler) Performance(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	report, err := h.portfolio.Performance(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err, "performance failed")
		return
	}
	c.JSON(http.StatusOK, api.PerformanceResponse{
		TotalValue:       report.TotalValue,
		TotalReturn:      report.TotalReturn,
		AnnualizedReturn: report.AnnualizedReturn,
		Excluded:         report.Excluded,
	})
}

// Suggestions handles GET /portfolio/suggestions.
func (h *PortfolioHandler) Suggestions(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	suggestions, err := h.portfolio.Suggestions(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err, "suggestions failed")
		return
	}
	c.JSON(http.StatusOK, api.SuggestionsResponse{Suggestions: suggestions})
}

// respondError maps usecase errors onto HTTP status codes. Unexpected
// errors become an opaque 500 so internals never leak to the client.
func (h *PortfolioHandler) respondError(c *gin.Context, err error, logMsg string) {
	slog.Warn(logMsg, "error", err, "remote_addr", c.ClientIP())
	switch {
	case errors.Is(err, usecase.ErrSymbolRequired), errors.Is(err, usecase.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, quotedomain.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stock information not found"})
	case errors.Is(err, usecase.ErrStockNotFound), errors.Is(err, usecase.ErrPortfolioNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, quotedomain.ErrUpstream):
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "market data provider unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
