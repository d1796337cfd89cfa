package repository

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/pkg/common"
	"tradepulse/pkg/logger"
	redisPkg "tradepulse/pkg/redis"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// cohereExample is one few-shot example for the Cohere classify endpoint.
type cohereExample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// The classify endpoint needs at least two examples per label.
var cohereExamples = []cohereExample{
	{Text: "Stock prices soar after positive earnings report", Label: "positive"},
	{Text: "Shares rally as guidance beats expectations", Label: "positive"},
	{Text: "Market crashes amid economic uncertainty", Label: "negative"},
	{Text: "Company warns of steep losses ahead", Label: "negative"},
	{Text: "Company maintains steady growth", Label: "neutral"},
	{Text: "Board announces annual shareholder meeting date", Label: "neutral"},
}

// cohereRepository classifies text with the Cohere classify endpoint.
type cohereRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	client         *http.Client
	requestLimiter *rate.Limiter
	redisClient    *redisPkg.Client
}

// NewCohereRepository creates a SentimentRepository backed by Cohere.
// redisClient may be nil; caching is then disabled.
func NewCohereRepository(cfg *config.Config, log *logger.Logger, redisClient *redisPkg.Client) SentimentRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Cohere.MaxRequestPerMinute)
	return &cohereRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		redisClient:    redisClient,
	}
}

type cohereClassifyRequest struct {
	Model    string          `json:"model,omitempty"`
	Inputs   []string        `json:"inputs"`
	Examples []cohereExample `json:"examples"`
}

type cohereClassifyResponse struct {
	Classifications []struct {
		Prediction string  `json:"prediction"`
		Confidence float64 `json:"confidence"`
	} `json:"classifications"`
}

// Classify sends one text to the classify endpoint and maps the
// prediction and confidence to a ClassificationResult.
func (r *cohereRepository) Classify(ctx context.Context, text string) (*dto.ClassificationResult, error) {
	if cached := r.cacheGet(ctx, text); cached != nil {
		return cached, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(cohereClassifyRequest{
		Model:    r.cfg.Cohere.Model,
		Inputs:   []string{text},
		Examples: cohereExamples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/v1/classify", r.cfg.Cohere.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create classification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.Cohere.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from classifier: %d - %s", resp.StatusCode, string(body))
	}

	var parsed cohereClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if len(parsed.Classifications) == 0 {
		return nil, fmt.Errorf("classifier returned an empty result set")
	}

	result := &dto.ClassificationResult{
		Label: parsed.Classifications[0].Prediction,
		Score: parsed.Classifications[0].Confidence,
	}
	r.cacheSet(ctx, text, result)
	return result, nil
}

func (r *cohereRepository) cacheGet(ctx context.Context, text string) *dto.ClassificationResult {
	if r.redisClient == nil {
		return nil
	}
	raw, err := r.redisClient.Get(ctx, r.cacheKey(text)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.DebugContext(ctx, "Sentiment cache lookup failed", logger.ErrorField(err))
		}
		return nil
	}
	var result dto.ClassificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (r *cohereRepository) cacheSet(ctx context.Context, text string, result *dto.ClassificationResult) {
	if r.redisClient == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, r.cacheKey(text), raw, r.cfg.Sentiment.CacheTTL).Err(); err != nil {
		r.logger.DebugContext(ctx, "Sentiment cache write failed", logger.ErrorField(err))
	}
}

func (r *cohereRepository) cacheKey(text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf(common.RedisKeySentimentCache, "cohere", hex.EncodeToString(sum[:]))
}
