package config

import (
	"time"

	"tradepulse/pkg/config"
)

// News holds configuration for the news provider gateway.
type News struct {
	Provider            string        `mapstructure:"provider"`
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	RSSBaseURL          string        `mapstructure:"rss_base_url"`
	PageSize            int           `mapstructure:"page_size"`
	Language            string        `mapstructure:"language"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	RefreshCron         string        `mapstructure:"refresh_cron"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Sentiment selects and tunes the sentiment classifier provider.
type Sentiment struct {
	Provider string        `mapstructure:"provider"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// HuggingFace holds the configuration for the HF inference API.
type HuggingFace struct {
	Token               string `mapstructure:"token"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Cohere holds the configuration for the Cohere classify API.
type Cohere struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Assistant tunes the conversational assistant completions.
type Assistant struct {
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
	MaxHeadlines    int     `mapstructure:"max_headlines"`
}

// YahooFinance holds the configuration for the quote endpoint.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Alerts tunes the price-alert checker.
type Alerts struct {
	CheckCron      string        `mapstructure:"check_cron"`
	NotifyCooldown time.Duration `mapstructure:"notify_cooldown"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Session tunes the mock session layer.
type Session struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	News         News            `mapstructure:"news"`
	Sentiment    Sentiment       `mapstructure:"sentiment"`
	HuggingFace  HuggingFace     `mapstructure:"huggingface"`
	Cohere       Cohere          `mapstructure:"cohere"`
	Gemini       Gemini          `mapstructure:"gemini"`
	Assistant    Assistant       `mapstructure:"assistant"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Alerts       Alerts          `mapstructure:"alerts"`
	Telegram     Telegram        `mapstructure:"telegram"`
	Session      Session         `mapstructure:"session"`
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
