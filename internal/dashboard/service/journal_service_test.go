package service

import (
	"context"
	"testing"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"
	"tradepulse/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTradeRepo struct {
	trades map[string]*entity.Trade
	order  []string
}

func newFakeTradeRepo() *fakeTradeRepo {
	return &fakeTradeRepo{trades: map[string]*entity.Trade{}}
}

func (f *fakeTradeRepo) Create(_ context.Context, trade *entity.Trade) error {
	copied := *trade
	f.trades[trade.ID] = &copied
	f.order = append(f.order, trade.ID)
	return nil
}

func (f *fakeTradeRepo) FindByID(_ context.Context, id string) (*entity.Trade, error) {
	trade, ok := f.trades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *trade
	return &copied, nil
}

func (f *fakeTradeRepo) FindAll(_ context.Context) ([]entity.Trade, error) {
	trades := make([]entity.Trade, 0, len(f.order))
	for _, id := range f.order {
		trades = append(trades, *f.trades[id])
	}
	return trades, nil
}

func (f *fakeTradeRepo) Update(_ context.Context, trade *entity.Trade) error {
	if _, ok := f.trades[trade.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *trade
	f.trades[trade.ID] = &copied
	return nil
}

func (f *fakeTradeRepo) Delete(_ context.Context, id string) error {
	delete(f.trades, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func TestCreateTrade(t *testing.T) {
	repo := newFakeTradeRepo()
	svc := NewJournalService(repo, newTestLogger(t))

	trade, err := svc.CreateTrade(context.Background(), &dto.CreateTradeRequest{
		Symbol:     "aapl",
		Type:       "buy",
		Quantity:   10,
		EntryPrice: 150,
		Strategy:   "breakout",
		Tags:       []string{"momentum"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, "AAPL", trade.Symbol)
	assert.Equal(t, entity.TradeStatusOpen, trade.Status)
	assert.Nil(t, trade.PnL)
}

func TestCreateTrade_Validation(t *testing.T) {
	svc := NewJournalService(newFakeTradeRepo(), newTestLogger(t))

	_, err := svc.CreateTrade(context.Background(), &dto.CreateTradeRequest{Symbol: "AAPL", Type: "hold", Quantity: 1, EntryPrice: 1})
	assert.Error(t, err)

	_, err = svc.CreateTrade(context.Background(), &dto.CreateTradeRequest{Symbol: "AAPL", Type: "buy", Quantity: 0, EntryPrice: 1})
	assert.Error(t, err)

	_, err = svc.CreateTrade(context.Background(), &dto.CreateTradeRequest{Symbol: "AAPL", Type: "buy", Quantity: 1, EntryPrice: -5})
	assert.Error(t, err)
}

func TestCreateTrade_WithExitIsClosed(t *testing.T) {
	svc := NewJournalService(newFakeTradeRepo(), newTestLogger(t))

	trade, err := svc.CreateTrade(context.Background(), &dto.CreateTradeRequest{
		Symbol:     "TSLA",
		Type:       "buy",
		Quantity:   5,
		EntryPrice: 200,
		ExitPrice:  utils.ToPointer(210.0),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.TradeStatusClosed, trade.Status)
	require.NotNil(t, trade.PnL)
	assert.Equal(t, 50.0, *trade.PnL)
}

func TestUpdateTrade_ClosingComputesPnL(t *testing.T) {
	repo := newFakeTradeRepo()
	svc := NewJournalService(repo, newTestLogger(t))

	trade, err := svc.CreateTrade(context.Background(), &dto.CreateTradeRequest{
		Symbol: "NVDA", Type: "sell", Quantity: 4, EntryPrice: 120,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTrade(context.Background(), trade.ID, &dto.UpdateTradeRequest{
		ExitPrice: utils.ToPointer(110.0),
	})
	require.NoError(t, err)

	// A short profits when the price falls.
	assert.Equal(t, entity.TradeStatusClosed, updated.Status)
	require.NotNil(t, updated.PnL)
	assert.Equal(t, 40.0, *updated.PnL)
	require.NotNil(t, updated.ExitDate)
}

func TestGetStats(t *testing.T) {
	repo := newFakeTradeRepo()
	svc := NewJournalService(repo, newTestLogger(t))
	ctx := context.Background()

	mustCreate := func(req *dto.CreateTradeRequest) {
		_, err := svc.CreateTrade(ctx, req)
		require.NoError(t, err)
	}

	// Closed winner: +100. Closed loser: -50. One still open.
	mustCreate(&dto.CreateTradeRequest{Symbol: "AAPL", Type: "buy", Quantity: 10, EntryPrice: 100, ExitPrice: utils.ToPointer(110.0)})
	mustCreate(&dto.CreateTradeRequest{Symbol: "MSFT", Type: "buy", Quantity: 5, EntryPrice: 300, ExitPrice: utils.ToPointer(290.0)})
	mustCreate(&dto.CreateTradeRequest{Symbol: "TSLA", Type: "buy", Quantity: 1, EntryPrice: 200})

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 2, stats.ClosedTrades)
	assert.Equal(t, 1, stats.OpenTrades)
	assert.Equal(t, 50.0, stats.TotalPnL)
	assert.Equal(t, 50.0, stats.WinRate)
}

func TestGetStats_EmptyJournal(t *testing.T) {
	svc := NewJournalService(newFakeTradeRepo(), newTestLogger(t))

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.WinRate)
}
