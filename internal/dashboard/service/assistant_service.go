package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/entity"
	"tradepulse/pkg/common"
	"tradepulse/pkg/logger"
)

var (
	// tickerToken matches an uppercase ticker-shaped token anywhere in an
	// utterance ("how is TSLA doing").
	tickerToken = regexp.MustCompile(`\b[A-Z]{1,5}\b`)
	// tickerShape validates a whole string as a US ticker symbol,
	// including class suffixes such as BRK.B.
	tickerShape = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z])?$`)
)

const assistantSystemPrompt = `You are an expert day trading analyst with access to real-time market data.
Provide specific, actionable trading insights. Always include:
1. Risk assessment
2. Entry/exit levels
3. Market timing considerations
4. Risk management recommendations
Be concise but thorough. Never provide financial advice, only analysis.`

// AssistantService composes the conversational assistant reply: resolve
// a ticker from the latest utterance, pull related headlines, classify
// their aggregate sentiment, and stream the model completion.
type AssistantService interface {
	Stream(ctx context.Context, messages []dto.ChatMessage, emit func(delta string) error) error
}

type assistantService struct {
	cfg           *config.Config
	logger        *logger.Logger
	newsRepo      repository.NewsRepository
	sentimentRepo repository.SentimentRepository
	assistantRepo repository.AssistantRepository
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(cfg *config.Config, log *logger.Logger, newsRepo repository.NewsRepository, sentimentRepo repository.SentimentRepository, assistantRepo repository.AssistantRepository) AssistantService {
	return &assistantService{
		cfg:           cfg,
		logger:        log,
		newsRepo:      newsRepo,
		sentimentRepo: sentimentRepo,
		assistantRepo: assistantRepo,
	}
}

// Stream answers one chat turn. Each turn is independent; no server-side
// conversation state survives the call.
func (s *assistantService) Stream(ctx context.Context, messages []dto.ChatMessage, emit func(delta string) error) error {
	if len(messages) == 0 {
		return fmt.Errorf("chat request contains no messages")
	}
	utterance := strings.TrimSpace(messages[len(messages)-1].Content)
	if utterance == "" {
		return fmt.Errorf("latest chat message is empty")
	}

	symbol := s.resolveTicker(ctx, utterance)
	searchTerm := utterance
	if symbol != "" {
		searchTerm = symbol
	}

	headlines := s.fetchHeadlines(ctx, searchTerm)
	sentiment := s.aggregateSentiment(ctx, headlines)
	system := s.composeSystemPrompt(symbol, headlines, sentiment)

	return s.assistantRepo.StreamChat(ctx, messages, system, emit)
}

// resolveTicker extracts a ticker symbol from the utterance: a cheap
// regex match first, then the LLM extraction fallback. Returns "" when
// nothing resolves.
func (s *assistantService) resolveTicker(ctx context.Context, utterance string) string {
	if match := tickerToken.FindString(utterance); match != "" {
		return match
	}

	ticker, err := s.assistantRepo.ExtractTicker(ctx, utterance)
	if err != nil {
		s.logger.Warn("LLM ticker extraction failed", logger.ErrorField(err))
		return ""
	}
	if ticker == common.TickerNone || !tickerShape.MatchString(ticker) {
		return ""
	}
	return ticker
}

// fetchHeadlines pulls related headlines for the resolved search term.
// Failures degrade to no context rather than failing the chat turn.
func (s *assistantService) fetchHeadlines(ctx context.Context, searchTerm string) []string {
	articles, err := s.newsRepo.Search(ctx, entity.SelectQuery(searchTerm))
	if err != nil {
		s.logger.Warn("Failed to fetch assistant context headlines",
			logger.ErrorField(err),
			logger.StringField("search_term", searchTerm),
		)
		return nil
	}

	limit := s.cfg.Assistant.MaxHeadlines
	if limit <= 0 || limit > len(articles) {
		limit = len(articles)
	}
	headlines := make([]string, 0, limit)
	for _, article := range articles[:limit] {
		headlines = append(headlines, article.Title)
	}
	return headlines
}

// aggregateSentiment classifies the headlines as one concatenated blob.
// This is deliberately coarser than the per-article dashboard pipeline.
func (s *assistantService) aggregateSentiment(ctx context.Context, headlines []string) string {
	if len(headlines) == 0 {
		return ""
	}
	result, err := s.sentimentRepo.Classify(ctx, strings.Join(headlines, "\n"))
	if err != nil {
		s.logger.Warn("Aggregate sentiment unavailable", logger.ErrorField(err))
		return ""
	}
	return fmt.Sprintf("%s (confidence %.2f)", result.Label, result.Score)
}

func (s *assistantService) composeSystemPrompt(symbol string, headlines []string, sentiment string) string {
	var b strings.Builder
	b.WriteString(assistantSystemPrompt)

	if symbol != "" {
		b.WriteString("\n\nThe user is asking about ")
		b.WriteString(symbol)
		b.WriteString(".")
	}
	if len(headlines) > 0 {
		b.WriteString("\n\nLatest related headlines:\n")
		for _, h := range headlines {
			b.WriteString("- ")
			b.WriteString(h)
			b.WriteString("\n")
		}
	}
	if sentiment != "" {
		b.WriteString("\nAggregate news sentiment: ")
		b.WriteString(sentiment)
	}

	return b.String()
}
