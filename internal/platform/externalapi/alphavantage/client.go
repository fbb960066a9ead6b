package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/quotes/domain"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/platform/externalapi/alphavantage/dto"
)

// Client fetches current quotes and daily close series from the
// Alpha Vantage API. It is the only component that writes stock prices.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a new Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetQuote fetches the latest quote for a symbol via the GLOBAL_QUOTE function.
// It returns domain.ErrNoData when the provider has no quote for the symbol
// and domain.ErrUpstream for provider-side failures, including rate limits
// that survive the single retry.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)

	var body dto.GlobalQuoteResponse
	if err := c.getJSON(ctx, q, &body); err != nil {
		return nil, err
	}
	if body.Note != "" || body.Information != "" {
		return nil, fmt.Errorf("%w: rate limited", domain.ErrUpstream)
	}
	if body.ErrorMessage != "" || body.GlobalQuote.Symbol == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
	}

	g := body.GlobalQuote
	open, err := decimal.NewFromString(g.Open)
	if err != nil {
		return nil, fmt.Errorf("parse open %q: %w", g.Open, err)
	}
	high, err := decimal.NewFromString(g.High)
	if err != nil {
		return nil, fmt.Errorf("parse high %q: %w", g.High, err)
	}
	low, err := decimal.NewFromString(g.Low)
	if err != nil {
		return nil, fmt.Errorf("parse low %q: %w", g.Low, err)
	}
	price, err := decimal.NewFromString(g.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", g.Price, err)
	}
	prevClose, err := decimal.NewFromString(g.PreviousClose)
	if err != nil {
		return nil, fmt.Errorf("parse previous close %q: %w", g.PreviousClose, err)
	}
	change, err := decimal.NewFromString(g.Change)
	if err != nil {
		return nil, fmt.Errorf("parse change %q: %w", g.Change, err)
	}
	volume, err := strconv.ParseInt(g.Volume, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse volume %q: %w", g.Volume, err)
	}

	return &entity.Quote{
		Symbol:           g.Symbol,
		Open:             open,
		High:             high,
		Low:              low,
		Price:            price,
		Volume:           volume,
		LatestTradingDay: g.LatestTradingDay,
		PreviousClose:    prevClose,
		Change:           change,
		ChangePercent:    g.ChangePercent,
	}, nil
}

// GetDailyCloses fetches the full daily close history for a symbol and
// returns it keyed by "YYYY-MM-DD" date string. Error classification
// follows GetQuote.
func (c *Client) GetDailyCloses(ctx context.Context, symbol string) (map[string]decimal.Decimal, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY_ADJUSTED")
	q.Set("symbol", symbol)
	q.Set("outputsize", "full")
	q.Set("apikey", c.cfg.APIKey)

	var body dto.DailySeriesResponse
	if err := c.getJSON(ctx, q, &body); err != nil {
		return nil, err
	}
	if body.Note != "" || body.Information != "" {
		return nil, fmt.Errorf("%w: rate limited", domain.ErrUpstream)
	}
	if body.ErrorMessage != "" || len(body.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
	}

	closes := make(map[string]decimal.Decimal, len(body.TimeSeries))
	for day, bar := range body.TimeSeries {
		cl, err := decimal.NewFromString(bar.Close)
		if err != nil {
			return nil, fmt.Errorf("parse close %q for %s: %w", bar.Close, day, err)
		}
		closes[day] = cl
	}
	return closes, nil
}

// getJSON issues the query against /query and decodes the response.
// A transient failure (network error, HTTP 429/5xx) is retried exactly
// once after a short pause; the provider rate-limits aggressively, so
// more attempts only make things worse.
func (c *Client) getJSON(ctx context.Context, q url.Values, out any) error {
	u := fmt.Sprintf("%s/query?%s", c.cfg.BaseURL, q.Encode())

	res, err := c.do(ctx, u)
	if err != nil || retryableStatus(res.StatusCode) {
		if err == nil {
			drain(res)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", domain.ErrUpstream, ctx.Err())
		case <-time.After(c.cfg.RetryWait):
		}
		res, err = c.do(ctx, u)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer drain(res)

	if res.StatusCode >= 400 {
		return fmt.Errorf("%w: alphavantage http %d", domain.ErrUpstream, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func drain(res *http.Response) {
	if err := res.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}
