package common

const (
	// CategoryAll is the sentinel category meaning "no category filter";
	// the free-text query drives the news search instead.
	CategoryAll = "all"

	// DefaultNewsQuery is the neutral free-text search term used when no
	// category filter and no user query are active.
	DefaultNewsQuery = "stocks"

	// TickerNone is the sentinel returned by the LLM ticker extractor
	// when the utterance mentions no tradable symbol.
	TickerNone = "NONE"

	RedisKeySentimentCache = "sentiment:%s:%s"
	RedisKeySession        = "session:%s"
	RedisKeyAlertCooldown  = "price_alert:%d"
)
