package dto

import "tradepulse/internal/entity"

// NewsState is the snapshot of the news store returned to the dashboard.
type NewsState struct {
	Articles  []entity.NewsArticle `json:"articles"`
	IsLoading bool                 `json:"is_loading"`
	Category  string               `json:"category"`
	Query     string               `json:"query"`
}

// ArticleContentResponse carries extracted readable article text.
type ArticleContentResponse struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}
