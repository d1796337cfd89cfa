package service

import (
	"context"
	"sync"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"
	"tradepulse/pkg/utils"
)

// NewsEnrichmentService turns the current selector into a fully enriched
// article list: fetch once, classify every headline, map labels to market
// sentiment and impact tiers.
type NewsEnrichmentService interface {
	// Enrich never returns an error: a failed fetch yields an empty list
	// and a failed classification degrades that one article to neutral.
	// The output preserves the provider's article order and length.
	Enrich(ctx context.Context, sel entity.Selector) []entity.NewsArticle
}

type newsEnrichmentService struct {
	newsRepo      repository.NewsRepository
	sentimentRepo repository.SentimentRepository
	logger        *logger.Logger
}

// NewNewsEnrichmentService creates a new NewsEnrichmentService.
func NewNewsEnrichmentService(newsRepo repository.NewsRepository, sentimentRepo repository.SentimentRepository, log *logger.Logger) NewsEnrichmentService {
	return &newsEnrichmentService{
		newsRepo:      newsRepo,
		sentimentRepo: sentimentRepo,
		logger:        log,
	}
}

// Enrich runs the fetch-and-classify pipeline for the selector. All
// classifications run concurrently and the result is assembled only after
// every call has settled; results are zipped back by position, never by
// completion order.
func (s *newsEnrichmentService) Enrich(ctx context.Context, sel entity.Selector) []entity.NewsArticle {
	articles, err := s.newsRepo.Search(ctx, sel)
	if err != nil {
		s.logger.Error("Failed to fetch news, clearing article list",
			logger.ErrorField(err),
			logger.StringField("selector", sel.CacheKey()),
		)
		return []entity.NewsArticle{}
	}

	enriched := make([]entity.NewsArticle, len(articles))
	var wg sync.WaitGroup
	for i, article := range articles {
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			result, err := s.sentimentRepo.Classify(ctx, article.Title)
			if err != nil {
				s.logger.Warn("Classification unavailable, defaulting to neutral",
					logger.ErrorField(err),
					logger.StringField("title", article.Title),
				)
			}
			enriched[i] = applyClassification(article, result, err)
		})
	}
	wg.Wait()

	s.logger.DebugContext(ctx, "Enriched news batch",
		logger.IntField("count", len(enriched)),
		logger.StringField("selector", sel.CacheKey()),
	)

	return enriched
}

// applyClassification maps a classifier result onto an article. A failed
// call degrades to neutral/0/low; the article is never dropped.
func applyClassification(article entity.NewsArticle, result *dto.ClassificationResult, err error) entity.NewsArticle {
	if err != nil || result == nil {
		article.Sentiment = entity.SentimentNeutral
		article.SentimentScore = 0
		article.Impact = entity.ImpactLow
		return article
	}

	switch result.Label {
	case "positive":
		article.Sentiment = entity.SentimentBullish
		article.SentimentScore = result.Score
	case "negative":
		article.Sentiment = entity.SentimentBearish
		article.SentimentScore = -result.Score
	default:
		article.Sentiment = entity.SentimentNeutral
		article.SentimentScore = result.Score
	}
	article.Impact = entity.ImpactFromScore(article.SentimentScore)

	return article
}
