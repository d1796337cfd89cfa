package entity

import "time"

// AlertCondition is the direction a price alert watches for.
type AlertCondition string

const (
	AlertConditionAbove AlertCondition = "above"
	AlertConditionBelow AlertCondition = "below"
)

// PriceAlert fires when a symbol's market price crosses the target.
type PriceAlert struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Symbol      string         `gorm:"not null" json:"symbol"`
	Condition   AlertCondition `gorm:"not null" json:"condition"`
	TargetPrice float64        `gorm:"not null" json:"target_price"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	Notes       string         `json:"notes"`
	TriggeredAt *time.Time     `json:"triggered_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the PriceAlert model.
func (PriceAlert) TableName() string {
	return "price_alerts"
}
