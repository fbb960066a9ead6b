// Package cache decorates the market repository with a Redis cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/quotes/domain/entity"
)

// MarketRepository is the part of the market data surface worth caching.
// Following Go convention: interfaces are defined by the consumer, not the provider.
type MarketRepository interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetDailyCloses(ctx context.Context, symbol string) (map[string]decimal.Decimal, error)
}

// CachingMarketRepository wraps a MarketRepository with per-symbol Redis
// caching. Current quotes get a short TTL; daily close series change once
// per trading day and get a much longer one. A performance run over N
// holdings would otherwise refetch the same full series N times.
type CachingMarketRepository struct {
	inner     MarketRepository
	rdb       *redis.Client
	quoteTTL  time.Duration
	closesTTL time.Duration
	namespace string
}

// NewCachingMarketRepository decorates inner with a Redis cache.
// quoteTTL falls back to 5 minutes and closesTTL to 12 hours when zero;
// an empty namespace falls back to "market".
func NewCachingMarketRepository(rdb *redis.Client, quoteTTL, closesTTL time.Duration, inner MarketRepository, namespace string) *CachingMarketRepository {
	if quoteTTL <= 0 {
		quoteTTL = 5 * time.Minute
	}
	if closesTTL <= 0 {
		closesTTL = 12 * time.Hour
	}
	if namespace == "" {
		namespace = "market"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		quoteTTL:  quoteTTL,
		closesTTL: closesTTL,
		namespace: namespace,
	}
}

// GetQuote returns the cached quote when present, falling back to the
// inner repository. Cache writes are best-effort; a Redis failure never
// fails the request.
func (c *CachingMarketRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, symbol)
	}

	key := c.quoteKey(symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// drop a corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.quoteTTL).Err()
	}
	return out, nil
}

// GetDailyCloses returns the cached close series when present, falling
// back to the inner repository.
func (c *CachingMarketRepository) GetDailyCloses(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
	if c.rdb == nil {
		return c.inner.GetDailyCloses(ctx, symbol)
	}

	key := c.closesKey(symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out map[string]decimal.Decimal
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetDailyCloses(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.closesTTL).Err()
	}
	return out, nil
}

func (c *CachingMarketRepository) quoteKey(symbol string) string {
	return fmt.Sprintf("%s:quote:%s", c.namespace, safe(symbol))
}

func (c *CachingMarketRepository) closesKey(symbol string) string {
	return fmt.Sprintf("%s:closes:%s", c.namespace, safe(symbol))
}

func safe(s string) string {
	// escape characters that are awkward in Redis keys
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
