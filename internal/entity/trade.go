package entity

import (
	"time"

	"github.com/lib/pq"
)

// TradeType is the direction of a journal trade.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// TradeStatus tracks whether a journal trade is still open.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Trade is one entry in the trading journal.
type Trade struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Symbol     string         `gorm:"not null" json:"symbol"`
	Type       TradeType      `gorm:"not null" json:"type"`
	Quantity   float64        `gorm:"not null" json:"quantity"`
	EntryPrice float64        `gorm:"not null" json:"entry_price"`
	ExitPrice  *float64       `json:"exit_price,omitempty"`
	EntryDate  time.Time      `gorm:"not null" json:"entry_date"`
	ExitDate   *time.Time     `json:"exit_date,omitempty"`
	Notes      string         `json:"notes"`
	Strategy   string         `json:"strategy"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	PnL        *float64       `json:"pnl,omitempty"`
	Status     TradeStatus    `gorm:"not null" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Trade model.
func (Trade) TableName() string {
	return "trades"
}
