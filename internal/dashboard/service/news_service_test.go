package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"tradepulse/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnricher struct {
	mu      sync.Mutex
	results map[string][]entity.NewsArticle
	calls   int

	// blockKey makes Enrich block for that selector until release is
	// closed, to simulate a slow in-flight batch.
	blockKey string
	entered  chan struct{}
	release  chan struct{}
}

func (f *fakeEnricher) Enrich(_ context.Context, sel entity.Selector) []entity.NewsArticle {
	f.mu.Lock()
	f.calls++
	blocked := sel.CacheKey() == f.blockKey
	result := f.results[sel.CacheKey()]
	f.mu.Unlock()

	if blocked {
		f.entered <- struct{}{}
		<-f.release
	}
	if result == nil {
		result = []entity.NewsArticle{}
	}
	return result
}

func (f *fakeEnricher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewsService_InitialSnapshot(t *testing.T) {
	svc := NewNewsService(&fakeEnricher{}, newTestLogger(t))

	state := svc.Snapshot()
	assert.Empty(t, state.Articles)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "all", state.Category)
	assert.Equal(t, "stocks", state.Query)
}

func TestNewsService_SetSelectorReplacesArticles(t *testing.T) {
	enricher := &fakeEnricher{results: map[string][]entity.NewsArticle{
		"query:AAPL": headlines("apple earnings beat"),
	}}
	svc := NewNewsService(enricher, newTestLogger(t))

	state := svc.SetSelector(context.Background(), entity.SelectQuery("AAPL"))

	require.Len(t, state.Articles, 1)
	assert.Equal(t, "apple earnings beat", state.Articles[0].Title)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "AAPL", state.Query)
}

func TestNewsService_SameSelectorDoesNotRefetch(t *testing.T) {
	enricher := &fakeEnricher{results: map[string][]entity.NewsArticle{
		"category:business": headlines("fed holds rates"),
	}}
	svc := NewNewsService(enricher, newTestLogger(t))

	svc.SetSelector(context.Background(), entity.SelectCategory("business"))
	svc.SetSelector(context.Background(), entity.SelectCategory("business"))

	assert.Equal(t, 1, enricher.callCount())
}

func TestNewsService_RefreshAlwaysRefetches(t *testing.T) {
	enricher := &fakeEnricher{results: map[string][]entity.NewsArticle{
		"query:stocks": headlines("market open"),
	}}
	svc := NewNewsService(enricher, newTestLogger(t))

	svc.Refresh(context.Background())
	svc.Refresh(context.Background())

	assert.Equal(t, 2, enricher.callCount())
}

func TestNewsService_EmptyBatchClearsPreviousArticles(t *testing.T) {
	enricher := &fakeEnricher{results: map[string][]entity.NewsArticle{
		"query:AAPL": headlines("apple earnings beat"),
	}}
	svc := NewNewsService(enricher, newTestLogger(t))

	svc.SetSelector(context.Background(), entity.SelectQuery("AAPL"))
	// The selector with no configured result simulates a failed fetch,
	// which yields an empty batch. The stale list must not linger.
	state := svc.SetSelector(context.Background(), entity.SelectQuery("MSFT"))

	assert.Empty(t, state.Articles)
	assert.False(t, state.IsLoading)
}

func TestNewsService_StaleBatchIsDiscarded(t *testing.T) {
	enricher := &fakeEnricher{
		results: map[string][]entity.NewsArticle{
			"query:SLOW": headlines("outdated headline"),
			"query:FAST": headlines("fresh headline"),
		},
		blockKey: "query:SLOW",
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	svc := NewNewsService(enricher, newTestLogger(t))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.SetSelector(context.Background(), entity.SelectQuery("SLOW"))
	}()

	select {
	case <-enricher.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("slow batch never started")
	}

	// While the slow batch is in flight the store reports loading.
	assert.True(t, svc.Snapshot().IsLoading)

	// A newer selection settles first.
	state := svc.SetSelector(context.Background(), entity.SelectQuery("FAST"))
	require.Len(t, state.Articles, 1)
	assert.Equal(t, "fresh headline", state.Articles[0].Title)

	// Now let the slow batch settle; its result must be discarded.
	close(enricher.release)
	wg.Wait()

	final := svc.Snapshot()
	require.Len(t, final.Articles, 1)
	assert.Equal(t, "fresh headline", final.Articles[0].Title)
	assert.False(t, final.IsLoading)
	assert.Equal(t, "FAST", final.Query)
}

func TestNewsService_SnapshotReturnsCopy(t *testing.T) {
	enricher := &fakeEnricher{results: map[string][]entity.NewsArticle{
		"query:AAPL": headlines("apple earnings beat"),
	}}
	svc := NewNewsService(enricher, newTestLogger(t))
	svc.SetSelector(context.Background(), entity.SelectQuery("AAPL"))

	state := svc.Snapshot()
	state.Articles[0].Title = "mutated"

	assert.Equal(t, "apple earnings beat", svc.Snapshot().Articles[0].Title)
}
