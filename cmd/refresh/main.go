package main

import (
	"context"
	"log"
	"time"

	"portfolio_backend/internal/app/di"
	portfolioadapters "portfolio_backend/internal/feature/portfolio/adapters"
	quoteusecase "portfolio_backend/internal/feature/quotes/usecase"
	infradb "portfolio_backend/internal/platform/db"
	"portfolio_backend/internal/shared/ratelimiter"
)

func main() {
	db := infradb.OpenDB()
	market := di.NewMarket()
	store := portfolioadapters.NewPortfolioPostgres(db)
	limiter := ratelimiter.NewRateLimiter(5, time.Minute)
	uc := quoteusecase.NewRefreshUsecase(market, store, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	updated, failed, err := uc.RefreshAll(ctx)
	if err != nil {
		log.Fatal("refresh aborted:", err)
	}
	if failed > 0 {
		log.Printf("refresh finished with errors: %d updated, %d failed", updated, failed)
		return
	}
	log.Printf("refresh ok: %d updated", updated)
}
