package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

type fakeNewsRepo struct {
	mu       sync.Mutex
	articles []entity.NewsArticle
	err      error
	lastSel  entity.Selector
	calls    int
}

func (f *fakeNewsRepo) Search(_ context.Context, sel entity.Selector) ([]entity.NewsArticle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSel = sel
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

type fakeSentimentRepo struct {
	mu       sync.Mutex
	results  map[string]dto.ClassificationResult
	failures map[string]error
	err      error
	lastText string
}

func (f *fakeSentimentRepo) Classify(_ context.Context, text string) (*dto.ClassificationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.failures[text]; ok {
		return nil, err
	}
	if result, ok := f.results[text]; ok {
		return &result, nil
	}
	return &dto.ClassificationResult{Label: "neutral", Score: 0.5}, nil
}

func headlines(titles ...string) []entity.NewsArticle {
	articles := make([]entity.NewsArticle, 0, len(titles))
	for _, title := range titles {
		articles = append(articles, entity.NewsArticle{Title: title})
	}
	return articles
}

func TestEnrich_MapsLabelsToMarketSentiment(t *testing.T) {
	newsRepo := &fakeNewsRepo{articles: headlines("rally", "selloff", "sideways")}
	sentimentRepo := &fakeSentimentRepo{results: map[string]dto.ClassificationResult{
		"rally":    {Label: "positive", Score: 0.8},
		"selloff":  {Label: "negative", Score: 0.7},
		"sideways": {Label: "neutral", Score: 0.1},
	}}
	svc := NewNewsEnrichmentService(newsRepo, sentimentRepo, newTestLogger(t))

	enriched := svc.Enrich(context.Background(), entity.DefaultSelector())

	require.Len(t, enriched, 3)
	assert.Equal(t, entity.SentimentBullish, enriched[0].Sentiment)
	assert.Equal(t, 0.8, enriched[0].SentimentScore)
	assert.Equal(t, entity.ImpactHigh, enriched[0].Impact)

	assert.Equal(t, entity.SentimentBearish, enriched[1].Sentiment)
	assert.Equal(t, -0.7, enriched[1].SentimentScore)
	assert.Equal(t, entity.ImpactHigh, enriched[1].Impact)

	assert.Equal(t, entity.SentimentNeutral, enriched[2].Sentiment)
	assert.Equal(t, 0.1, enriched[2].SentimentScore)
	assert.Equal(t, entity.ImpactLow, enriched[2].Impact)
}

func TestEnrich_ClassifierFailureDegradesOneArticle(t *testing.T) {
	newsRepo := &fakeNewsRepo{articles: headlines("broken", "fine")}
	sentimentRepo := &fakeSentimentRepo{
		results:  map[string]dto.ClassificationResult{"fine": {Label: "positive", Score: 0.9}},
		failures: map[string]error{"broken": errors.New("model loading")},
	}
	svc := NewNewsEnrichmentService(newsRepo, sentimentRepo, newTestLogger(t))

	enriched := svc.Enrich(context.Background(), entity.DefaultSelector())

	require.Len(t, enriched, 2)
	assert.Equal(t, entity.SentimentNeutral, enriched[0].Sentiment)
	assert.Zero(t, enriched[0].SentimentScore)
	assert.Equal(t, entity.ImpactLow, enriched[0].Impact)

	assert.Equal(t, entity.SentimentBullish, enriched[1].Sentiment)
	assert.Equal(t, 0.9, enriched[1].SentimentScore)
}

func TestEnrich_FetchFailureYieldsEmptyList(t *testing.T) {
	newsRepo := &fakeNewsRepo{err: errors.New("provider down")}
	svc := NewNewsEnrichmentService(newsRepo, &fakeSentimentRepo{}, newTestLogger(t))

	enriched := svc.Enrich(context.Background(), entity.SelectCategory("business"))

	require.NotNil(t, enriched)
	assert.Empty(t, enriched)
}

func TestEnrich_PreservesOrderAndLength(t *testing.T) {
	titles := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	newsRepo := &fakeNewsRepo{articles: headlines(titles...)}
	// Every classification fails; no article may be dropped or reordered.
	sentimentRepo := &fakeSentimentRepo{err: errors.New("quota exceeded")}
	svc := NewNewsEnrichmentService(newsRepo, sentimentRepo, newTestLogger(t))

	enriched := svc.Enrich(context.Background(), entity.DefaultSelector())

	require.Len(t, enriched, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, enriched[i].Title)
		assert.Equal(t, entity.SentimentNeutral, enriched[i].Sentiment)
	}
}

func TestEnrich_PassesSelectorThrough(t *testing.T) {
	newsRepo := &fakeNewsRepo{}
	svc := NewNewsEnrichmentService(newsRepo, &fakeSentimentRepo{}, newTestLogger(t))

	svc.Enrich(context.Background(), entity.SelectQuery("NVDA"))

	assert.Equal(t, entity.SelectQuery("NVDA"), newsRepo.lastSel)
}
