package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"

	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
)

// Google News topic sections for the dashboard category tabs. Tabs with
// no section fall back to a keyword search.
var googleNewsTopics = map[string]string{
	"business":   "BUSINESS",
	"technology": "TECHNOLOGY",
	"science":    "SCIENCE",
	"health":     "HEALTH",
}

// googleRSSRepository fetches articles from the Google News RSS feed. It
// is the keyless fallback provider.
type googleRSSRepository struct {
	cfg           *config.Config
	logger        *logger.Logger
	parser        *gofeed.Parser
	inmemoryCache *cache.Cache
}

// NewGoogleRSSRepository creates a NewsRepository backed by Google News RSS.
func NewGoogleRSSRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &googleRSSRepository{
		cfg:           cfg,
		logger:        log,
		parser:        gofeed.NewParser(),
		inmemoryCache: cache.New(cfg.News.CacheTTL, 2*cfg.News.CacheTTL),
	}
}

// Search fetches and maps one feed page for the selector.
func (r *googleRSSRepository) Search(ctx context.Context, sel entity.Selector) ([]entity.NewsArticle, error) {
	if cached, found := r.inmemoryCache.Get(sel.CacheKey()); found {
		return cached.([]entity.NewsArticle), nil
	}

	feedURL := r.buildURL(sel)
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	limit := r.cfg.News.PageSize
	if limit <= 0 || limit > len(feed.Items) {
		limit = len(feed.Items)
	}

	articles := make([]entity.NewsArticle, 0, limit)
	for _, item := range feed.Items[:limit] {
		title, source := splitFeedTitle(item.Title)
		publishedAt := ""
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		articles = append(articles, entity.NewsArticle{
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			Source:      entity.NewsSource{Name: source},
			PublishedAt: publishedAt,
			URL:         item.Link,
		})
	}

	r.inmemoryCache.Set(sel.CacheKey(), articles, cache.DefaultExpiration)
	r.logger.DebugContext(ctx, "Fetched RSS articles",
		logger.IntField("count", len(articles)),
		logger.StringField("feed_url", feedURL),
	)

	return articles, nil
}

func (r *googleRSSRepository) buildURL(sel entity.Selector) string {
	base := r.cfg.News.RSSBaseURL
	localeParams := "hl=en-US&gl=US&ceid=US:en"

	if sel.IsCategory() {
		if topic, ok := googleNewsTopics[sel.Category]; ok {
			return fmt.Sprintf("%s/headlines/section/topic/%s?%s", base, topic, localeParams)
		}
		return fmt.Sprintf("%s/search?q=%s&%s", base, url.QueryEscape(sel.Category), localeParams)
	}
	return fmt.Sprintf("%s/search?q=%s&%s", base, url.QueryEscape(sel.Query), localeParams)
}

// splitFeedTitle strips the " - Source" suffix Google News appends to
// feed item titles.
func splitFeedTitle(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
