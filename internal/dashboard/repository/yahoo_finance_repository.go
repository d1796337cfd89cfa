package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/pkg/logger"

	"golang.org/x/time/rate"
)

// yahooFinanceRepository serves quotes from the Yahoo Finance chart API.
type yahooFinanceRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	client         *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a QuoteRepository backed by the Yahoo
// Finance chart endpoint.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) (QuoteRepository, error) {
	if cfg.YahooFinance.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("yahoo_finance.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	return &yahooFinanceRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches a one-day chart for the symbol and reduces it to a
// point-in-time quote.
func (r *yahooFinanceRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", r.cfg.YahooFinance.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; TradePulse/1.0)")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK response from quote provider: %d", resp.StatusCode)
	}

	var parsed yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("quote provider error: %s", parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("quote provider returned no result for %s", symbol)
	}

	meta := parsed.Chart.Result[0].Meta
	quote := &dto.Quote{
		Symbol:        meta.Symbol,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		Change:        meta.RegularMarketPrice - meta.PreviousClose,
		Currency:      meta.Currency,
	}
	if meta.PreviousClose != 0 {
		quote.ChangePercent = quote.Change / meta.PreviousClose * 100
	}

	return quote, nil
}
