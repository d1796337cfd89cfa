package dto

import "time"

// CreateTradeRequest is the body for adding a journal entry.
type CreateTradeRequest struct {
	Symbol     string     `json:"symbol"`
	Type       string     `json:"type"`
	Quantity   float64    `json:"quantity"`
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	EntryDate  *time.Time `json:"entry_date,omitempty"`
	ExitDate   *time.Time `json:"exit_date,omitempty"`
	Notes      string     `json:"notes"`
	Strategy   string     `json:"strategy"`
	Tags       []string   `json:"tags"`
}

// UpdateTradeRequest is the body for updating a journal entry. Setting an
// exit price closes the trade and computes its PnL.
type UpdateTradeRequest struct {
	ExitPrice *float64   `json:"exit_price,omitempty"`
	ExitDate  *time.Time `json:"exit_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Strategy  *string    `json:"strategy,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

// JournalStatsResponse aggregates performance over the journal.
type JournalStatsResponse struct {
	TotalPnL     float64 `json:"total_pnl"`
	WinRate      float64 `json:"win_rate"`
	TotalTrades  int     `json:"total_trades"`
	OpenTrades   int     `json:"open_trades"`
	ClosedTrades int     `json:"closed_trades"`
}
