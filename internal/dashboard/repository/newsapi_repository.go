package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// newsAPIRepository fetches articles from the NewsAPI.org REST API.
type newsAPIRepository struct {
	cfg           *config.Config
	logger        *logger.Logger
	client        *http.Client
	inmemoryCache *cache.Cache
}

// NewNewsAPIRepository creates a NewsRepository backed by NewsAPI.org.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &newsAPIRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		inmemoryCache: cache.New(cfg.News.CacheTTL, 2*cfg.News.CacheTTL),
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Source      struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
	} `json:"articles"`
}

// Search fetches one provider page of articles for the selector. The
// category arm maps to top-headlines, the free-text arm to everything.
func (r *newsAPIRepository) Search(ctx context.Context, sel entity.Selector) ([]entity.NewsArticle, error) {
	if cached, found := r.inmemoryCache.Get(sel.CacheKey()); found {
		return cached.([]entity.NewsArticle), nil
	}

	endpoint := r.buildURL(sel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK response from news provider: %d", resp.StatusCode)
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("news provider returned status %q: %s", payload.Status, payload.Message)
	}

	articles := make([]entity.NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, entity.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Source:      entity.NewsSource{ID: a.Source.ID, Name: a.Source.Name},
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
		})
	}

	r.inmemoryCache.Set(sel.CacheKey(), articles, cache.DefaultExpiration)
	r.logger.DebugContext(ctx, "Fetched news articles",
		logger.IntField("count", len(articles)),
		logger.StringField("selector", sel.CacheKey()),
	)

	return articles, nil
}

func (r *newsAPIRepository) buildURL(sel entity.Selector) string {
	params := url.Values{}
	params.Set("language", r.cfg.News.Language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(r.cfg.News.PageSize))
	params.Set("apiKey", r.cfg.News.APIKey)

	if sel.IsCategory() {
		params.Set("category", sel.Category)
		return fmt.Sprintf("%s/v2/top-headlines?%s", r.cfg.News.BaseURL, params.Encode())
	}
	params.Set("q", sel.Query)
	return fmt.Sprintf("%s/v2/everything?%s", r.cfg.News.BaseURL, params.Encode())
}
