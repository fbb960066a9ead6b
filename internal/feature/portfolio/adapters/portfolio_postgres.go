// Package adapters provides the repository implementations for the portfolio feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
	quotesusecase "portfolio_backend/internal/feature/quotes/usecase"
)

// StockModel is the GORM model for the stocks table.
type StockModel struct {
	ID           uint                `gorm:"primaryKey"`
	Symbol       string              `gorm:"uniqueIndex;size:16;not null"`
	Name         string              `gorm:"size:255;not null"`
	Sector       string              `gorm:"size:64"`
	CurrentPrice decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (StockModel) TableName() string {
	return "stocks"
}

// PortfolioModel is the GORM model for the portfolios table.
// One portfolio per user, created lazily on the first add.
type PortfolioModel struct {
	ID        uint `gorm:"primaryKey"`
	OwnerID   uint `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (PortfolioModel) TableName() string {
	return "portfolios"
}

// HoldingModel is the GORM model for the holdings table. The unique
// index on (portfolio_id, stock_id) is what makes merge-on-add possible:
// adds for an already-held stock hit the conflict path and increment.
type HoldingModel struct {
	ID          uint            `gorm:"primaryKey"`
	PortfolioID uint            `gorm:"not null;uniqueIndex:holding_portfolio_stock,priority:1"`
	StockID     uint            `gorm:"not null;uniqueIndex:holding_portfolio_stock,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (HoldingModel) TableName() string {
	return "holdings"
}

type portfolioPostgres struct {
	db *gorm.DB
}

// Compile-time checks against the consumer interfaces.
var (
	_ usecase.PortfolioRepository   = (*portfolioPostgres)(nil)
	_ quotesusecase.StockPriceStore = (*portfolioPostgres)(nil)
)

// NewPortfolioPostgres creates a new portfolioPostgres instance with the
// given gorm.DB connection.
func NewPortfolioPostgres(db *gorm.DB) *portfolioPostgres {
	return &portfolioPostgres{db: db}
}

func stockToEntity(m StockModel) entity.Stock {
	return entity.Stock{
		ID:           m.ID,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Sector:       m.Sector,
		CurrentPrice: m.CurrentPrice,
	}
}

// UpsertStock inserts the stock or, when the symbol already exists,
// refreshes its display name and current price. The sector is only
// written on insert, so later adds cannot blank it out.
func (r *portfolioPostgres) UpsertStock(ctx context.Context, s *entity.Stock) (*entity.Stock, error) {
	m := StockModel{
		Symbol:       s.Symbol,
		Name:         s.Name,
		Sector:       s.Sector,
		CurrentPrice: s.CurrentPrice,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "current_price", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}

	// reload by symbol: on the conflict path Create does not backfill the ID
	var stored StockModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", s.Symbol).First(&stored).Error; err != nil {
		return nil, err
	}
	out := stockToEntity(stored)
	return &out, nil
}

// FindStockBySymbol retrieves a stock by ticker symbol.
// It returns usecase.ErrStockNotFound when no such stock exists.
func (r *portfolioPostgres) FindStockBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStockNotFound
		}
		return nil, err
	}
	out := stockToEntity(m)
	return &out, nil
}

// FindOrCreateByOwner returns the owner's portfolio, creating an empty
// one when none exists.
func (r *portfolioPostgres) FindOrCreateByOwner(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
	var m PortfolioModel
	err := r.db.WithContext(ctx).Where(PortfolioModel{OwnerID: ownerID}).FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return &entity.Portfolio{ID: m.ID, OwnerID: m.OwnerID}, nil
}

// FindByOwner returns the owner's portfolio with holdings and stocks
// resolved, ordered by insertion. It returns usecase.ErrPortfolioNotFound
// when the owner has no portfolio.
func (r *portfolioPostgres) FindByOwner(ctx context.Context, ownerID uint) (*entity.Portfolio, error) {
	var m PortfolioModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPortfolioNotFound
		}
		return nil, err
	}

	var hs []HoldingModel
	if err := r.db.WithContext(ctx).Where("portfolio_id = ?", m.ID).Order("id ASC").Find(&hs).Error; err != nil {
		return nil, err
	}

	out := &entity.Portfolio{ID: m.ID, OwnerID: m.OwnerID, Holdings: make([]entity.Holding, 0, len(hs))}
	if len(hs) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(hs))
	for _, h := range hs {
		ids = append(ids, h.StockID)
	}
	var stocks []StockModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&stocks).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]StockModel, len(stocks))
	for _, s := range stocks {
		byID[s.ID] = s
	}

	for _, h := range hs {
		s, ok := byID[h.StockID]
		if !ok {
			// dangling stock reference; skip rather than fail the whole read
			continue
		}
		out.Holdings = append(out.Holdings, entity.Holding{
			Stock:    stockToEntity(s),
			Quantity: h.Quantity,
		})
	}
	return out, nil
}

// AddHolding merges quantity into the holding row with a single
// ON CONFLICT increment. The database applies concurrent increments
// serially, so simultaneous adds for the same stock never lose an
// update the way a read-modify-write would.
func (r *portfolioPostgres) AddHolding(ctx context.Context, portfolioID, stockID uint, quantity decimal.Decimal) error {
	m := HoldingModel{
		PortfolioID: portfolioID,
		StockID:     stockID,
		Quantity:    quantity,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "portfolio_id"}, {Name: "stock_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", quantity),
			"updated_at": time.Now(),
		}),
	}).Create(&m).Error
}

// RemoveHolding deletes the holding row; deleting an absent row is a no-op.
func (r *portfolioPostgres) RemoveHolding(ctx context.Context, portfolioID, stockID uint) error {
	return r.db.WithContext(ctx).
		Where("portfolio_id = ? AND stock_id = ?", portfolioID, stockID).
		Delete(&HoldingModel{}).Error
}

// ListSymbols returns every known stock symbol, for the price refresh job.
func (r *portfolioPostgres) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).Model(&StockModel{}).Order("symbol ASC").Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// UpdateCurrentPrice refreshes the stored price for a symbol.
func (r *portfolioPostgres) UpdateCurrentPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&StockModel{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"current_price": decimal.NewNullDecimal(price),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrStockNotFound
	}
	return nil
}
