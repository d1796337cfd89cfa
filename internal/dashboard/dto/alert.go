package dto

// CreateAlertRequest is the body for registering a price alert.
type CreateAlertRequest struct {
	Symbol      string  `json:"symbol"`
	Condition   string  `json:"condition"`
	TargetPrice float64 `json:"target_price"`
	Notes       string  `json:"notes"`
}
