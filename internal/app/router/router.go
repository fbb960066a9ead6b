// Package router wires the HTTP handlers onto the gin engine.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	quotehandler "portfolio_backend/internal/feature/quotes/transport/handler"
	healthhandler "portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// NewRouter builds the gin engine with all routes registered.
// Everything below the auth group requires a valid JWT.
func NewRouter(auth *authhandler.AuthHandler, portfolio *portfoliohandler.PortfolioHandler,
	quotes *quotehandler.QuoteHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", healthhandler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		authed.POST("/portfolio", portfolio.AddHolding)
		authed.DELETE("/portfolio/:symbol", portfolio.RemoveHolding)
		authed.GET("/portfolio/performance", portfolio.Performance)
		authed.GET("/portfolio/suggestions", portfolio.Suggestions)
		authed.GET("/stock/search", quotes.Search)
	}

	return r
}
