package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradepulse/internal/dashboard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yahooConfig(baseURL string) *config.Config {
	return &config.Config{
		YahooFinance: config.YahooFinance{
			BaseURL:             baseURL,
			MaxRequestPerMinute: 6000,
		},
	}
}

func TestYahooGetQuote(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"AAPL","currency":"USD","regularMarketPrice":202.5,"chartPreviousClose":200.0}}],"error":null}}`))
	}))
	defer server.Close()

	repo, err := NewYahooFinanceRepository(yahooConfig(server.URL), newTestLogger(t))
	require.NoError(t, err)

	quote, err := repo.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 202.5, quote.Price)
	assert.Equal(t, 200.0, quote.PreviousClose)
	assert.InDelta(t, 2.5, quote.Change, 1e-9)
	assert.InDelta(t, 1.25, quote.ChangePercent, 1e-9)
	assert.Equal(t, "USD", quote.Currency)
}

func TestYahooGetQuote_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer server.Close()

	repo, err := NewYahooFinanceRepository(yahooConfig(server.URL), newTestLogger(t))
	require.NoError(t, err)

	_, err = repo.GetQuote(context.Background(), "ZZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestNewYahooFinanceRepository_RequiresRateLimit(t *testing.T) {
	_, err := NewYahooFinanceRepository(&config.Config{}, newTestLogger(t))
	assert.Error(t, err)
}
