// Package domain defines domain-level errors for market quote data.
package domain

import "errors"

// The market data provider can fail in two distinct ways that callers
// must be able to tell apart: the provider answered but has no data for
// the request, or the provider itself failed. Handlers map the former to
// 404 and the latter to 502; the refresh job retries neither.
var (
	// ErrNoData indicates the provider has no quote or close series for
	// the requested symbol or date.
	ErrNoData = errors.New("no market data for symbol")

	// ErrUpstream indicates a provider-side failure: network error,
	// rate limiting, HTTP 5xx or a malformed response.
	ErrUpstream = errors.New("market data provider failure")
)
