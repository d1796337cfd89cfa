package entity

import "time"

// WatchlistItem is a ticker symbol pinned to the dashboard watchlist.
type WatchlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"unique;not null" json:"symbol"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the WatchlistItem model.
func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
