// Package entity defines the domain entities for market quote data.
package entity

import "github.com/shopspring/decimal"

// Quote is a single price observation for a ticker symbol, as reported
// by the market data provider for the latest trading day.
type Quote struct {
	Symbol           string
	Open             decimal.Decimal
	High             decimal.Decimal
	Low              decimal.Decimal
	Price            decimal.Decimal
	Volume           int64
	LatestTradingDay string
	PreviousClose    decimal.Decimal
	Change           decimal.Decimal
	ChangePercent    string
}
