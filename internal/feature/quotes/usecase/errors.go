// Package usecase implements the business logic for the quotes feature:
// symbol lookup and the background price refresh.
package usecase

import "errors"

// ErrSymbolRequired is returned when a lookup is missing the ticker symbol.
var ErrSymbolRequired = errors.New("stock symbol is required")
