// Package entity defines the domain entities for the portfolio feature.
package entity

import "github.com/shopspring/decimal"

// Stock is shared, read-mostly reference data keyed by ticker symbol.
// CurrentPrice is unset until the price source has fetched a quote for
// the symbol at least once.
type Stock struct {
	ID           uint
	Symbol       string
	Name         string
	Sector       string
	CurrentPrice decimal.NullDecimal
}

// Holding pairs a stock with the quantity held in one portfolio.
// A portfolio contains at most one holding per distinct stock; adds for
// an already-held stock merge into the existing quantity.
type Holding struct {
	Stock    Stock
	Quantity decimal.Decimal
}

// Portfolio is the set of holdings owned by one user. It is created
// lazily on the first add and is never deleted.
type Portfolio struct {
	ID       uint
	OwnerID  uint
	Holdings []Holding
}
