package dto

// DailyBar is one day's OHLC record in a TIME_SERIES_DAILY_ADJUSTED response.
type DailyBar struct {
	Open  string `json:"1. open"`
	High  string `json:"2. high"`
	Low   string `json:"3. low"`
	Close string `json:"4. close"`
}

// DailySeriesResponse represents the JSON response of the
// TIME_SERIES_DAILY_ADJUSTED function, keyed by "YYYY-MM-DD" date strings.
type DailySeriesResponse struct {
	TimeSeries   map[string]DailyBar `json:"Time Series (Daily)"`
	Note         string              `json:"Note,omitempty"`
	Information  string              `json:"Information,omitempty"`
	ErrorMessage string              `json:"Error Message,omitempty"`
}
