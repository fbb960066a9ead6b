// Package dto defines data transfer objects for Alpha Vantage API responses.
package dto

// GlobalQuoteResponse represents the JSON response of the GLOBAL_QUOTE
// function. All numbers arrive as strings. On a rate-limit hit the
// provider returns 200 with only a Note/Information field set; on an
// unknown symbol the Global Quote object is empty.
type GlobalQuoteResponse struct {
	GlobalQuote struct {
		Symbol           string `json:"01. symbol"`
		Open             string `json:"02. open"`
		High             string `json:"03. high"`
		Low              string `json:"04. low"`
		Price            string `json:"05. price"`
		Volume           string `json:"06. volume"`
		LatestTradingDay string `json:"07. latest trading day"`
		PreviousClose    string `json:"08. previous close"`
		Change           string `json:"09. change"`
		ChangePercent    string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}
