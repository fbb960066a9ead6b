// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/platform/cache"
	"portfolio_backend/internal/platform/externalapi/alphavantage"
	infrahttp "portfolio_backend/internal/platform/http"
)

// NewMarket creates a fully configured Alpha Vantage client with HTTP client.
func NewMarket() *alphavantage.Client {
	cfg := alphavantage.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return alphavantage.NewClient(cfg, httpClient)
}

// NewCachedMarket wraps the Alpha Vantage client in the Redis quote cache.
// Quotes are kept for five minutes; daily close history until the next
// market-data refresh at 8AM Eastern. With a nil Redis client the cache
// passes every call straight through.
func NewCachedMarket(rdb *redis.Client) *cache.CachingMarketRepository {
	market := NewMarket()
	return cache.NewCachingMarketRepository(rdb, 5*time.Minute, cache.TimeUntilNext8AM(), market, "market")
}
