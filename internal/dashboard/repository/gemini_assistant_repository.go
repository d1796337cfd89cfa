package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/pkg/logger"
	"tradepulse/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const tickerExtractionPrompt = `You are a precise stock ticker extraction expert. Extract ONLY the US stock ticker symbol from the user's text.

Rules:
1. Return the exact ticker symbol in UPPERCASE (e.g. "TSLA", "BRK.B")
2. If no company or ticker is mentioned, return "NONE"
3. Use the following company-to-ticker mappings:
   - Tesla/Tesla Motors -> TSLA
   - Apple/Apple Inc -> AAPL
   - Microsoft/Microsoft Corporation -> MSFT
   - Google/Alphabet -> GOOGL
   - Amazon/Amazon.com -> AMZN
   - NVIDIA -> NVDA
   - Meta/Facebook -> META
   - Berkshire Hathaway -> BRK.B
   - Netflix -> NFLX
4. Return ONLY the ticker symbol or "NONE" - no explanations or additional text.

Examples:
user: how are tesla stocks doing? -> TSLA
user: latest news on apple -> AAPL
user: price prediction for microsoft -> MSFT
user: how is google performing? -> GOOGL
user: should I buy amazon shares? -> AMZN

Extract the stock ticker from this text: %q
Remember: Return ONLY the ticker symbol in UPPERCASE or "NONE".`

// geminiAssistantRepository is an implementation of AssistantRepository
// that uses the Google Gemini API.
type geminiAssistantRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	genAiClient    *genai.Client
	requestLimiter *rate.Limiter
	tokenLimiter   *ratelimit.TokenLimiter
}

// NewGeminiAssistantRepository creates a new instance of geminiAssistantRepository.
func NewGeminiAssistantRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AssistantRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	return &geminiAssistantRepository{
		cfg:            cfg,
		logger:         log,
		genAiClient:    genAiClient,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
	}, nil
}

// StreamChat streams a completion for the conversation, forwarding every
// text delta to emit in arrival order.
func (r *geminiAssistantRepository) StreamChat(ctx context.Context, messages []dto.ChatMessage, system string, emit func(delta string) error) error {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		var role genai.Role = genai.RoleUser
		if msg.Role == "assistant" || msg.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	if err := r.waitForQuota(ctx, contents); err != nil {
		return err
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(r.cfg.Assistant.Temperature),
		MaxOutputTokens:   r.cfg.Assistant.MaxOutputTokens,
	}

	for resp, err := range r.genAiClient.Models.GenerateContentStream(ctx, r.cfg.Gemini.Model, contents, genCfg) {
		if err != nil {
			return fmt.Errorf("failed to stream completion: %w", err)
		}
		if delta := resp.Text(); delta != "" {
			if err := emit(delta); err != nil {
				return err
			}
		}
	}

	return nil
}

// ExtractTicker asks the model for the ticker symbol mentioned in the
// prompt. The response is a bare symbol or the NONE sentinel; validation
// against the ticker shape is the caller's job.
func (r *geminiAssistantRepository) ExtractTicker(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(tickerExtractionPrompt, prompt), genai.RoleUser),
	}

	if err := r.waitForQuota(ctx, contents); err != nil {
		return "", err
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0)),
		MaxOutputTokens: 16,
	})
	if err != nil {
		return "", fmt.Errorf("failed to extract ticker: %w", err)
	}

	return strings.ToUpper(strings.TrimSpace(resp.Text())), nil
}

func (r *geminiAssistantRepository) waitForQuota(ctx context.Context, contents []*genai.Content) error {
	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for request limit: %w", err)
	}
	return nil
}
