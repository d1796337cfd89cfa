package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tradepulse/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

// articleContentRepository fetches an article page and extracts its
// readable body text.
type articleContentRepository struct {
	logger *logger.Logger
	client *http.Client
}

// NewArticleContentRepository creates a new ArticleContentRepository.
func NewArticleContentRepository(log *logger.Logger) ArticleContentRepository {
	return &articleContentRepository{
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetContent downloads the page and returns its main text, with boiler-
// plate stripped by readability and markup flattened by goquery.
func (r *articleContentRepository) GetContent(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create content request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; TradePulse/1.0)")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK response from article page: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read article page: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article page: %w", err)
	}

	content := doc.Content()
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to flatten article content: %w", err)
	}
	gq.Find("script, style, noscript").Remove()

	text := strings.TrimSpace(gq.Text())
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", fmt.Errorf("no readable content found at %s", pageURL)
	}

	return text, nil
}
