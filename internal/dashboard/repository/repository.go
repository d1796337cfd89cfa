package repository

import (
	"context"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"
)

// NewsRepository fetches raw articles for the current selector. Exactly
// one of the selector's arms is honored per call.
type NewsRepository interface {
	Search(ctx context.Context, sel entity.Selector) ([]entity.NewsArticle, error)
}

// SentimentRepository classifies one text string per call. It must be
// safe for concurrent use; every invocation is one outbound network call
// unless a cached result exists.
type SentimentRepository interface {
	Classify(ctx context.Context, text string) (*dto.ClassificationResult, error)
}

// AssistantRepository wraps the LLM provider used by the conversational
// assistant.
type AssistantRepository interface {
	// StreamChat streams the completion for the conversation, invoking
	// emit for every incremental text delta as it arrives.
	StreamChat(ctx context.Context, messages []dto.ChatMessage, system string, emit func(delta string) error) error
	// ExtractTicker asks the model for the ticker symbol mentioned in the
	// prompt, or the NONE sentinel.
	ExtractTicker(ctx context.Context, prompt string) (string, error)
}

// ArticleContentRepository extracts readable text from an article page.
type ArticleContentRepository interface {
	GetContent(ctx context.Context, url string) (string, error)
}

// QuoteRepository serves point-in-time market quotes.
type QuoteRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
}

// TradeRepository persists trading-journal entries.
type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	FindByID(ctx context.Context, id string) (*entity.Trade, error)
	FindAll(ctx context.Context) ([]entity.Trade, error)
	Update(ctx context.Context, trade *entity.Trade) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists dashboard users.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// WatchlistRepository persists pinned symbols.
type WatchlistRepository interface {
	Add(ctx context.Context, item *entity.WatchlistItem) error
	FindAll(ctx context.Context) ([]entity.WatchlistItem, error)
	DeleteBySymbol(ctx context.Context, symbol string) error
}

// AlertRepository persists price alerts.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.PriceAlert) error
	FindAll(ctx context.Context) ([]entity.PriceAlert, error)
	FindActive(ctx context.Context) ([]entity.PriceAlert, error)
	Update(ctx context.Context, alert *entity.PriceAlert) error
	Delete(ctx context.Context, id uint) error
}
