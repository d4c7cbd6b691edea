package models

import (
	"time"
)

// Direction represents the trade direction
type Direction string

const (
	DirectionBuy   Direction = "Buy"
	DirectionShort Direction = "Short"
)

// Trade represents a single journal entry. Raw fields are supplied by the
// caller; derived fields are owned by the metrics engine and the equity
// ledger and are overwritten on every create and update.
type Trade struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Ticker      string     `gorm:"size:10;not null;index" json:"ticker"`
	Direction   Direction  `gorm:"size:5;not null" json:"direction"`
	Volume      int        `gorm:"not null" json:"volume"`
	EntryPrice  float64    `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	StopLoss    *float64   `gorm:"type:decimal(20,8)" json:"stop_loss"`
	TargetPrice *float64   `gorm:"type:decimal(20,8)" json:"target_price"`
	EntryDate   time.Time  `gorm:"not null;index" json:"entry_date"`
	ExitDate    *time.Time `gorm:"index" json:"exit_date"`
	ExitPrice   *float64   `gorm:"type:decimal(20,8)" json:"exit_price"`

	// Derived fields. Optional ones stay pointers so the JSON output carries
	// an explicit null instead of omitting the key.
	RiskReward       *float64 `gorm:"type:decimal(20,8)" json:"risk_reward"`
	ProfitFactor     *float64 `gorm:"type:decimal(20,8)" json:"profit_factor"`
	DaysHeld         float64  `gorm:"type:decimal(20,8)" json:"days_held"`
	CapitalInvested  float64  `gorm:"type:decimal(20,8)" json:"capital_invested"`
	ProfitLoss       *float64 `gorm:"type:decimal(20,8)" json:"profit_loss"`
	RiskPerShare     *float64 `gorm:"type:decimal(20,8)" json:"risk_per_share"`
	ProfitPerShare   *float64 `gorm:"type:decimal(20,8)" json:"profit_per_share"`
	RiskDollars      *float64 `gorm:"type:decimal(20,8)" json:"risk_dollars"`
	ProfitDollars    *float64 `gorm:"type:decimal(20,8)" json:"profit_dollars"`
	CumulativeEquity float64  `gorm:"type:decimal(20,8)" json:"cumulative_equity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

// IsClosed reports whether both exit fields are recorded. A trade missing
// either one is still open.
func (t *Trade) IsClosed() bool {
	return t.ExitDate != nil && t.ExitPrice != nil
}
