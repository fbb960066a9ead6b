package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"portfolio_backend/internal/feature/quotes/domain"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		RetryWait: time.Millisecond,
	}
}

func TestClient_GetQuote_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Query().Get("function") != "GLOBAL_QUOTE" {
			t.Errorf("expected function GLOBAL_QUOTE, got %s", r.URL.Query().Get("function"))
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %s", r.URL.Query().Get("apikey"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Global Quote": {
				"01. symbol": "AAPL",
				"02. open": "150.00",
				"03. high": "155.00",
				"04. low": "149.00",
				"05. price": "154.50",
				"06. volume": "1000000",
				"07. latest trading day": "2025-01-15",
				"08. previous close": "151.00",
				"09. change": "3.50",
				"10. change percent": "2.3179%"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", quote.Symbol)
	}
	if quote.Price.String() != "154.5" {
		t.Errorf("expected price 154.5, got %s", quote.Price)
	}
	if quote.Volume != 1000000 {
		t.Errorf("expected volume 1000000, got %d", quote.Volume)
	}
	if quote.LatestTradingDay != "2025-01-15" {
		t.Errorf("expected latest trading day 2025-01-15, got %s", quote.LatestTradingDay)
	}
	if quote.ChangePercent != "2.3179%" {
		t.Errorf("expected change percent 2.3179%%, got %s", quote.ChangePercent)
	}
}

func TestClient_GetQuote_NoData(t *testing.T) {
	t.Parallel()

	// Unknown symbols come back as 200 with an empty Global Quote object.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	_, err := client.GetQuote(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestClient_GetQuote_RateLimited(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	_, err := client.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if errors.Is(err, domain.ErrNoData) {
		t.Fatal("rate limit must not be classified as no-data")
	}
}

func TestClient_GetQuote_RetriesOnceOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Global Quote": {
				"01. symbol": "AAPL",
				"02. open": "1", "03. high": "1", "04. low": "1",
				"05. price": "2.00",
				"06. volume": "10",
				"07. latest trading day": "2025-01-15",
				"08. previous close": "1", "09. change": "1",
				"10. change percent": "100%"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price.String() != "2" {
		t.Errorf("expected price 2, got %s", quote.Price)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls (one retry), got %d", got)
	}
}

func TestClient_GetQuote_PersistentServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	_, err := client.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	// Exactly one retry, never more.
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestClient_GetDailyCloses_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("function") != "TIME_SERIES_DAILY_ADJUSTED" {
			t.Errorf("expected function TIME_SERIES_DAILY_ADJUSTED, got %s", r.URL.Query().Get("function"))
		}
		if r.URL.Query().Get("outputsize") != "full" {
			t.Errorf("expected outputsize full, got %s", r.URL.Query().Get("outputsize"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Time Series (Daily)": {
				"2024-01-15": {"1. open": "99.00", "2. high": "101.00", "3. low": "98.00", "4. close": "100.00"},
				"2024-01-12": {"1. open": "97.00", "2. high": "99.50", "3. low": "96.00", "4. close": "99.00"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	closes, err := client.GetDailyCloses(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closes) != 2 {
		t.Fatalf("expected 2 closes, got %d", len(closes))
	}
	if closes["2024-01-15"].String() != "100" {
		t.Errorf("expected close 100 for 2024-01-15, got %s", closes["2024-01-15"])
	}
	if _, ok := closes["2024-01-13"]; ok {
		t.Error("did not expect a close for a non-trading day")
	}
}

func TestClient_GetDailyCloses_NoData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), server.Client())

	_, err := client.GetDailyCloses(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
