package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistantRepo struct {
	ticker    string
	tickerErr error
	deltas    []string
	streamErr error

	system       string
	lastMessages []dto.ChatMessage
	extractCalls int
}

func (f *fakeAssistantRepo) StreamChat(_ context.Context, messages []dto.ChatMessage, system string, emit func(delta string) error) error {
	f.system = system
	f.lastMessages = messages
	for _, delta := range f.deltas {
		if err := emit(delta); err != nil {
			return err
		}
	}
	return f.streamErr
}

func (f *fakeAssistantRepo) ExtractTicker(_ context.Context, _ string) (string, error) {
	f.extractCalls++
	if f.tickerErr != nil {
		return "", f.tickerErr
	}
	return f.ticker, nil
}

func assistantConfig() *config.Config {
	return &config.Config{Assistant: config.Assistant{MaxHeadlines: 2}}
}

func userTurn(content string) []dto.ChatMessage {
	return []dto.ChatMessage{{Role: "user", Content: content}}
}

func TestAssistantStream_TickerFromUtterance(t *testing.T) {
	newsRepo := &fakeNewsRepo{articles: headlines("tesla deliveries up", "tesla recall widens", "third headline")}
	sentimentRepo := &fakeSentimentRepo{results: map[string]dto.ClassificationResult{
		"tesla deliveries up\ntesla recall widens": {Label: "positive", Score: 0.64},
	}}
	assistantRepo := &fakeAssistantRepo{deltas: []string{"Looking at ", "TSLA..."}}
	svc := NewAssistantService(assistantConfig(), newTestLogger(t), newsRepo, sentimentRepo, assistantRepo)

	var reply strings.Builder
	err := svc.Stream(context.Background(), userTurn("what do you think about TSLA today?"), func(delta string) error {
		reply.WriteString(delta)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Looking at TSLA...", reply.String())

	// The ticker came from the regex; the LLM fallback must not be used.
	assert.Zero(t, assistantRepo.extractCalls)
	assert.Equal(t, entity.SelectQuery("TSLA"), newsRepo.lastSel)

	assert.Contains(t, assistantRepo.system, "The user is asking about TSLA")
	assert.Contains(t, assistantRepo.system, "tesla deliveries up")
	assert.Contains(t, assistantRepo.system, "tesla recall widens")
	// MaxHeadlines is 2; the third headline is dropped.
	assert.NotContains(t, assistantRepo.system, "third headline")
	assert.Contains(t, assistantRepo.system, "positive (confidence 0.64)")
}

func TestAssistantStream_TickerFromLLMFallback(t *testing.T) {
	newsRepo := &fakeNewsRepo{}
	assistantRepo := &fakeAssistantRepo{ticker: "NVDA"}
	svc := NewAssistantService(assistantConfig(), newTestLogger(t), newsRepo, &fakeSentimentRepo{}, assistantRepo)

	err := svc.Stream(context.Background(), userTurn("how is the chip maker from santa clara doing?"), func(string) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, assistantRepo.extractCalls)
	assert.Equal(t, entity.SelectQuery("NVDA"), newsRepo.lastSel)
	assert.Contains(t, assistantRepo.system, "The user is asking about NVDA")
}

func TestAssistantStream_NoTickerSearchesUtterance(t *testing.T) {
	newsRepo := &fakeNewsRepo{}
	assistantRepo := &fakeAssistantRepo{ticker: "NONE"}
	svc := NewAssistantService(assistantConfig(), newTestLogger(t), newsRepo, &fakeSentimentRepo{}, assistantRepo)

	err := svc.Stream(context.Background(), userTurn("is the market bullish this week?"), func(string) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, entity.SelectQuery("is the market bullish this week?"), newsRepo.lastSel)
	assert.NotContains(t, assistantRepo.system, "The user is asking about")
}

func TestAssistantStream_HeadlineFetchFailureDegrades(t *testing.T) {
	newsRepo := &fakeNewsRepo{err: errors.New("provider down")}
	assistantRepo := &fakeAssistantRepo{deltas: []string{"ok"}}
	svc := NewAssistantService(assistantConfig(), newTestLogger(t), newsRepo, &fakeSentimentRepo{}, assistantRepo)

	err := svc.Stream(context.Background(), userTurn("thoughts on AAPL?"), func(string) error { return nil })

	require.NoError(t, err)
	assert.NotContains(t, assistantRepo.system, "Latest related headlines")
	assert.NotContains(t, assistantRepo.system, "Aggregate news sentiment")
}

func TestAssistantStream_EmptyConversation(t *testing.T) {
	svc := NewAssistantService(assistantConfig(), newTestLogger(t), &fakeNewsRepo{}, &fakeSentimentRepo{}, &fakeAssistantRepo{})

	err := svc.Stream(context.Background(), nil, func(string) error { return nil })
	assert.Error(t, err)

	err = svc.Stream(context.Background(), userTurn("   "), func(string) error { return nil })
	assert.Error(t, err)
}
