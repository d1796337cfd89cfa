package dto

// ClassifyRequest is the body for an ad hoc classification call.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassificationResult is the label and confidence returned by a
// sentiment classifier provider. The label vocabulary is provider-defined
// ("positive", "negative", "neutral" for FinBERT); the score is in [0,1].
type ClassificationResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
