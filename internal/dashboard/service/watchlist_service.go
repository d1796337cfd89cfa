package service

import (
	"context"
	"fmt"
	"strings"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"
)

// WatchlistService manages the pinned-symbol list and decorates it with
// live quotes.
type WatchlistService interface {
	List(ctx context.Context) ([]dto.WatchlistEntry, error)
	Add(ctx context.Context, symbol string) (*entity.WatchlistItem, error)
	Remove(ctx context.Context, symbol string) error
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	quoteRepo     repository.QuoteRepository
	logger        *logger.Logger
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(watchlistRepo repository.WatchlistRepository, quoteRepo repository.QuoteRepository, log *logger.Logger) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		quoteRepo:     quoteRepo,
		logger:        log,
	}
}

// List returns the watchlist with a quote per symbol. A failed quote
// lookup leaves that entry's quote nil; the symbol still renders.
func (s *watchlistService) List(ctx context.Context) ([]dto.WatchlistEntry, error) {
	items, err := s.watchlistRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.WatchlistEntry, 0, len(items))
	for _, item := range items {
		entry := dto.WatchlistEntry{Symbol: item.Symbol}
		quote, err := s.quoteRepo.GetQuote(ctx, item.Symbol)
		if err != nil {
			s.logger.Warn("Failed to fetch watchlist quote",
				logger.ErrorField(err),
				logger.StringField("symbol", item.Symbol),
			)
		} else {
			entry.Quote = quote
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Add pins a symbol after validating its ticker shape.
func (s *watchlistService) Add(ctx context.Context, symbol string) (*entity.WatchlistItem, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !tickerShape.MatchString(symbol) {
		return nil, fmt.Errorf("invalid ticker symbol %q", symbol)
	}

	item := &entity.WatchlistItem{Symbol: symbol}
	if err := s.watchlistRepo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove unpins a symbol.
func (s *watchlistService) Remove(ctx context.Context, symbol string) error {
	return s.watchlistRepo.DeleteBySymbol(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}
