package service

import (
	"context"
	"errors"
	"testing"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWatchlistRepo struct {
	items []entity.WatchlistItem
}

func (f *fakeWatchlistRepo) Add(_ context.Context, item *entity.WatchlistItem) error {
	item.ID = uint(len(f.items) + 1)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeWatchlistRepo) FindAll(_ context.Context) ([]entity.WatchlistItem, error) {
	return f.items, nil
}

func (f *fakeWatchlistRepo) DeleteBySymbol(_ context.Context, symbol string) error {
	for i, item := range f.items {
		if item.Symbol == symbol {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func TestWatchlistAdd(t *testing.T) {
	repo := &fakeWatchlistRepo{}
	svc := NewWatchlistService(repo, &fakeQuoteRepo{}, newTestLogger(t))

	item, err := svc.Add(context.Background(), " nvda ")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", item.Symbol)

	_, err = svc.Add(context.Background(), "not a ticker")
	assert.Error(t, err)
}

func TestWatchlistList_QuoteFailureLeavesEntry(t *testing.T) {
	repo := &fakeWatchlistRepo{items: []entity.WatchlistItem{
		{ID: 1, Symbol: "AAPL"},
		{ID: 2, Symbol: "FAIL"},
	}}
	quotes := &fakeQuoteRepo{quotes: map[string]*dto.Quote{
		"AAPL": {Symbol: "AAPL", Price: 205},
	}}
	svc := NewWatchlistService(repo, quotes, newTestLogger(t))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NotNil(t, entries[0].Quote)
	assert.Equal(t, 205.0, entries[0].Quote.Price)

	// The quote lookup failed but the symbol still renders.
	assert.Equal(t, "FAIL", entries[1].Symbol)
	assert.Nil(t, entries[1].Quote)
}

func TestWatchlistRemove(t *testing.T) {
	repo := &fakeWatchlistRepo{items: []entity.WatchlistItem{{ID: 1, Symbol: "AAPL"}}}
	svc := NewWatchlistService(repo, &fakeQuoteRepo{err: errors.New("unused")}, newTestLogger(t))

	require.NoError(t, svc.Remove(context.Background(), "aapl"))
	assert.Empty(t, repo.items)
}
