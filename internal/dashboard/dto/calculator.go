package dto

// PositionSizeRequest is the input to the position-size calculator.
type PositionSizeRequest struct {
	AccountSize    float64 `json:"account_size"`
	RiskPercentage float64 `json:"risk_percentage"`
	EntryPrice     float64 `json:"entry_price"`
	StopLoss       float64 `json:"stop_loss"`
	TargetPrice    float64 `json:"target_price,omitempty"`
}

// PositionSizeResponse is the closed-form sizing result.
type PositionSizeResponse struct {
	PositionSize    int     `json:"position_size"`
	PositionValue   float64 `json:"position_value"`
	MaxLoss         float64 `json:"max_loss"`
	PotentialGain   float64 `json:"potential_gain"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	RiskPercentage  float64 `json:"risk_percentage"`
}
