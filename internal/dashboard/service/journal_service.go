package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"
	"tradepulse/pkg/utils"

	"github.com/google/uuid"
)

// JournalService manages trading-journal entries and their aggregate
// performance statistics.
type JournalService interface {
	CreateTrade(ctx context.Context, req *dto.CreateTradeRequest) (*entity.Trade, error)
	GetTrade(ctx context.Context, id string) (*entity.Trade, error)
	GetAllTrades(ctx context.Context) ([]entity.Trade, error)
	UpdateTrade(ctx context.Context, id string, req *dto.UpdateTradeRequest) (*entity.Trade, error)
	DeleteTrade(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*dto.JournalStatsResponse, error)
}

type journalService struct {
	tradeRepo repository.TradeRepository
	logger    *logger.Logger
}

// NewJournalService creates a new JournalService.
func NewJournalService(tradeRepo repository.TradeRepository, log *logger.Logger) JournalService {
	return &journalService{
		tradeRepo: tradeRepo,
		logger:    log,
	}
}

// CreateTrade records a new journal entry. A request carrying an exit
// price is stored as an already-closed trade with its PnL computed.
func (s *journalService) CreateTrade(ctx context.Context, req *dto.CreateTradeRequest) (*entity.Trade, error) {
	tradeType := entity.TradeType(req.Type)
	if tradeType != entity.TradeTypeBuy && tradeType != entity.TradeTypeSell {
		return nil, fmt.Errorf("invalid trade type %q", req.Type)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if req.EntryPrice <= 0 {
		return nil, fmt.Errorf("entry price must be positive")
	}

	entryDate := utils.TimeNowET()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	trade := &entity.Trade{
		ID:         uuid.NewString(),
		Symbol:     strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Type:       tradeType,
		Quantity:   req.Quantity,
		EntryPrice: req.EntryPrice,
		EntryDate:  entryDate,
		Notes:      req.Notes,
		Strategy:   req.Strategy,
		Tags:       req.Tags,
		Status:     entity.TradeStatusOpen,
	}
	if req.ExitPrice != nil {
		s.closeTrade(trade, *req.ExitPrice, req.ExitDate)
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		s.logger.Error("Failed to create trade", logger.ErrorField(err), logger.StringField("symbol", trade.Symbol))
		return nil, err
	}
	return trade, nil
}

// GetTrade retrieves one journal entry.
func (s *journalService) GetTrade(ctx context.Context, id string) (*entity.Trade, error) {
	return s.tradeRepo.FindByID(ctx, id)
}

// GetAllTrades retrieves the full journal, newest entries first.
func (s *journalService) GetAllTrades(ctx context.Context) ([]entity.Trade, error) {
	return s.tradeRepo.FindAll(ctx)
}

// UpdateTrade applies partial updates; setting an exit price closes the
// trade and computes its PnL.
func (s *journalService) UpdateTrade(ctx context.Context, id string, req *dto.UpdateTradeRequest) (*entity.Trade, error) {
	trade, err := s.tradeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		trade.Notes = *req.Notes
	}
	if req.Strategy != nil {
		trade.Strategy = *req.Strategy
	}
	if req.Tags != nil {
		trade.Tags = req.Tags
	}
	if req.ExitPrice != nil {
		s.closeTrade(trade, *req.ExitPrice, req.ExitDate)
	}

	if err := s.tradeRepo.Update(ctx, trade); err != nil {
		s.logger.Error("Failed to update trade", logger.ErrorField(err), logger.StringField("trade_id", id))
		return nil, err
	}
	return trade, nil
}

// DeleteTrade removes a journal entry.
func (s *journalService) DeleteTrade(ctx context.Context, id string) error {
	return s.tradeRepo.Delete(ctx, id)
}

// GetStats aggregates PnL and win rate over closed trades.
func (s *journalService) GetStats(ctx context.Context) (*dto.JournalStatsResponse, error) {
	trades, err := s.tradeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.JournalStatsResponse{TotalTrades: len(trades)}
	wins := 0
	for _, trade := range trades {
		if trade.Status != entity.TradeStatusClosed || trade.PnL == nil {
			stats.OpenTrades++
			continue
		}
		stats.ClosedTrades++
		stats.TotalPnL += *trade.PnL
		if *trade.PnL > 0 {
			wins++
		}
	}
	if stats.ClosedTrades > 0 {
		stats.WinRate = float64(wins) / float64(stats.ClosedTrades) * 100
	}
	return stats, nil
}

// closeTrade stamps the exit and computes realized PnL. Sells profit
// when the price falls, so the sign flips.
func (s *journalService) closeTrade(trade *entity.Trade, exitPrice float64, exitDate *time.Time) {
	pnl := (exitPrice - trade.EntryPrice) * trade.Quantity
	if trade.Type == entity.TradeTypeSell {
		pnl = -pnl
	}

	when := utils.TimeNowET()
	if exitDate != nil {
		when = *exitDate
	}

	trade.ExitPrice = &exitPrice
	trade.ExitDate = &when
	trade.PnL = &pnl
	trade.Status = entity.TradeStatusClosed
}
