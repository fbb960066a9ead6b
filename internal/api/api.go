// Package api defines the request and response bodies of the HTTP surface.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for successful mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the signed JWT returned by /login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest is the request body for the /signup endpoint.
// Gin binding tags validate presence, email format and password length.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request body for the /login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AddHoldingRequest is the request body for POST /portfolio.
// Quantity accepts a JSON number; positivity is validated by the usecase.
type AddHoldingRequest struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Name     string  `json:"name"`
	Sector   string  `json:"sector"`
}

// QuoteResponse is the JSON shape of GET /stock/search.
// Prices are decimal strings, mirroring what the provider sends.
type QuoteResponse struct {
	Symbol           string `json:"symbol"`
	Open             string `json:"open"`
	High             string `json:"high"`
	Low              string `json:"low"`
	Price            string `json:"price"`
	Volume           int64  `json:"volume"`
	LatestTradingDay string `json:"latestTradingDay"`
	PreviousClose    string `json:"previousClose"`
	Change           string `json:"change"`
	ChangePercent    string `json:"changePercent"`
}

// PerformanceResponse is the JSON shape of GET /portfolio/performance.
// Monetary fields are decimal strings with two fractional digits;
// AnnualizedReturn is "n/a" when the portfolio has no measurable value.
// Excluded lists symbols that had no usable year-ago close and therefore
// contribute to none of the figures.
type PerformanceResponse struct {
	TotalValue       string   `json:"totalValue"`
	TotalReturn      string   `json:"totalReturn"`
	AnnualizedReturn string   `json:"annualizedReturn"`
	Excluded         []string `json:"excluded"`
}

// SuggestionsResponse is the JSON shape of GET /portfolio/suggestions.
// The list always contains at least one entry.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
