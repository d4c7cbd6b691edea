package repository

import (
	"errors"

	"github.com/trade-journal/internal/models"
	"gorm.io/gorm"
)

// TradeRepository handles trade data access
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Transaction runs fn against a transactional view of the repository. Either
// every write inside fn commits or none of them does; ledger recomputation
// relies on this.
func (r *TradeRepository) Transaction(fn func(tx *TradeRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TradeRepository{db: tx})
	})
}

// Create inserts a new trade; the store assigns the next identity.
func (r *TradeRepository) Create(trade *models.Trade) error {
	return r.db.Create(trade).Error
}

// Update persists every field of an existing trade.
func (r *TradeRepository) Update(trade *models.Trade) error {
	return r.db.Save(trade).Error
}

// Delete removes a trade.
func (r *TradeRepository) Delete(trade *models.Trade) error {
	return r.db.Delete(trade).Error
}

// GetByID retrieves a trade by identity.
func (r *TradeRepository) GetByID(id uint) (*models.Trade, error) {
	var trade models.Trade
	if err := r.db.First(&trade, id).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

// GetAllByIdentity returns every trade in ascending identity order, the
// canonical order of the equity ledger.
func (r *TradeRepository) GetAllByIdentity() ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Order("id ASC").Find(&trades)
	return trades, result.Error
}

// GetAllByEntryDate returns every trade ordered by entry date, the order the
// journal is displayed in.
func (r *TradeRepository) GetAllByEntryDate() ([]models.Trade, error) {
	var trades []models.Trade
	result := r.db.Order("entry_date ASC").Find(&trades)
	return trades, result.Error
}

// GetLast returns the trade with the greatest identity, or nil when the
// journal is empty.
func (r *TradeRepository) GetLast() (*models.Trade, error) {
	var trade models.Trade
	err := r.db.Order("id DESC").First(&trade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// GetPredecessor returns the trade immediately before id in identity order,
// or nil when id is the first trade.
func (r *TradeRepository) GetPredecessor(id uint) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.Where("id < ?", id).Order("id DESC").First(&trade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// GetSuccessors returns all trades after id in ascending identity order.
func (r *TradeRepository) GetSuccessors(id uint) ([]*models.Trade, error) {
	var trades []*models.Trade
	result := r.db.Where("id > ?", id).Order("id ASC").Find(&trades)
	return trades, result.Error
}

// GetOpen returns trades missing an exit date or exit price.
func (r *TradeRepository) GetOpen() ([]*models.Trade, error) {
	var trades []*models.Trade
	result := r.db.Where("exit_date IS NULL OR exit_price IS NULL").
		Order("id ASC").
		Find(&trades)
	return trades, result.Error
}

// SaveEquities persists the recomputed cumulative equity column.
func (r *TradeRepository) SaveEquities(trades []*models.Trade) error {
	for _, t := range trades {
		err := r.db.Model(t).Update("cumulative_equity", t.CumulativeEquity).Error
		if err != nil {
			return err
		}
	}
	return nil
}
