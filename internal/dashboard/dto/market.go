package dto

// Quote is a point-in-time market snapshot for one symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency,omitempty"`
}

// WatchlistEntry pairs a pinned symbol with its latest quote. Quote is
// nil when the market-data call failed; the symbol still renders.
type WatchlistEntry struct {
	Symbol string `json:"symbol"`
	Quote  *Quote `json:"quote,omitempty"`
}

// AddWatchlistRequest is the body for pinning a symbol.
type AddWatchlistRequest struct {
	Symbol string `json:"symbol"`
}
