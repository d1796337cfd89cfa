package service

import (
	"fmt"
	"math"

	"tradepulse/internal/dashboard/dto"
)

// CalculatorService computes risk-based position sizing.
type CalculatorService interface {
	PositionSize(req *dto.PositionSizeRequest) (*dto.PositionSizeResponse, error)
}

type calculatorService struct{}

// NewCalculatorService creates a new CalculatorService.
func NewCalculatorService() CalculatorService {
	return &calculatorService{}
}

// PositionSize applies the closed-form sizing formula: shares =
// floor(account * risk% / |entry - stop|).
func (s *calculatorService) PositionSize(req *dto.PositionSizeRequest) (*dto.PositionSizeResponse, error) {
	if req.AccountSize <= 0 {
		return nil, fmt.Errorf("account size must be positive")
	}
	if req.RiskPercentage <= 0 || req.RiskPercentage > 100 {
		return nil, fmt.Errorf("risk percentage must be in (0, 100]")
	}
	if req.EntryPrice <= 0 || req.StopLoss <= 0 {
		return nil, fmt.Errorf("entry price and stop loss must be positive")
	}
	if req.EntryPrice == req.StopLoss {
		return nil, fmt.Errorf("entry price and stop loss must differ")
	}

	riskAmount := req.AccountSize * req.RiskPercentage / 100
	riskPerShare := math.Abs(req.EntryPrice - req.StopLoss)
	shares := int(math.Floor(riskAmount / riskPerShare))

	result := &dto.PositionSizeResponse{
		PositionSize:  shares,
		PositionValue: float64(shares) * req.EntryPrice,
		MaxLoss:       float64(shares) * riskPerShare,
	}
	if req.TargetPrice > 0 {
		result.PotentialGain = float64(shares) * math.Abs(req.TargetPrice-req.EntryPrice)
		if result.MaxLoss > 0 {
			result.RiskRewardRatio = result.PotentialGain / result.MaxLoss
		}
	}
	result.RiskPercentage = result.MaxLoss / req.AccountSize * 100

	return result, nil
}
