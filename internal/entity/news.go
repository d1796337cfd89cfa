package entity

import "math"

// Sentiment is the coarse market-mood classification of a news headline.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Impact is the magnitude bucket derived from the absolute sentiment score.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// ImpactFromScore buckets a signed sentiment score into an impact tier.
// |score| > 0.6 is high, |score| > 0.2 is medium, anything else is low.
func ImpactFromScore(score float64) Impact {
	abs := math.Abs(score)
	switch {
	case abs > 0.6:
		return ImpactHigh
	case abs > 0.2:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// NewsSource identifies the outlet an article came from.
type NewsSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewsArticle is a news article as served to the dashboard. Articles come
// out of the news provider with only the raw fields populated; the
// enrichment pipeline fills Sentiment, SentimentScore and Impact. Field
// names follow the provider's wire shape so the client can render either.
type NewsArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Source      NewsSource `json:"source"`
	PublishedAt string     `json:"publishedAt"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"urlToImage,omitempty"`

	Sentiment      Sentiment `json:"sentiment,omitempty"`
	SentimentScore float64   `json:"sentimentScore"`
	Impact         Impact    `json:"impact,omitempty"`
}
