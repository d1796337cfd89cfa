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

// huggingFaceRepository classifies text with a FinBERT-style model hosted
// on the HuggingFace inference API.
type huggingFaceRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	client         *http.Client
	requestLimiter *rate.Limiter
	redisClient    *redisPkg.Client
}

// NewHuggingFaceRepository creates a SentimentRepository backed by the HF
// inference API. redisClient may be nil; caching is then disabled.
func NewHuggingFaceRepository(cfg *config.Config, log *logger.Logger, redisClient *redisPkg.Client) SentimentRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.HuggingFace.MaxRequestPerMinute)
	return &huggingFaceRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		redisClient:    redisClient,
	}
}

// Classify sends one text to the model and returns the top label with its
// confidence. The HF response shape is [[{label, score}, ...]] ordered by
// score; anything else is a malformed payload.
func (r *huggingFaceRepository) Classify(ctx context.Context, text string) (*dto.ClassificationResult, error) {
	if cached := r.cacheGet(ctx, text); cached != nil {
		return cached, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s", r.cfg.HuggingFace.BaseURL, r.cfg.HuggingFace.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create classification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.HuggingFace.Token)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from classifier: %d - %s", resp.StatusCode, string(body))
	}

	var parsed [][]dto.ClassificationResult
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if len(parsed) == 0 || len(parsed[0]) == 0 {
		return nil, fmt.Errorf("classifier returned an empty result set")
	}

	result := parsed[0][0]
	r.cacheSet(ctx, text, &result)
	return &result, nil
}

func (r *huggingFaceRepository) cacheGet(ctx context.Context, text string) *dto.ClassificationResult {
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

func (r *huggingFaceRepository) cacheSet(ctx context.Context, text string, result *dto.ClassificationResult) {
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

func (r *huggingFaceRepository) cacheKey(text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf(common.RedisKeySentimentCache, "hf", hex.EncodeToString(sum[:]))
}
