package http

import (
	"net/http"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/dashboard/service"
	"tradepulse/internal/entity"
	"tradepulse/pkg/common"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles HTTP requests for the news feed.
type NewsHandler struct {
	newsService service.NewsService
	contentRepo repository.ArticleContentRepository
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, contentRepo repository.ArticleContentRepository, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, contentRepo: contentRepo, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetNews)
	g.POST("/refresh", h.RefreshNews)
	g.GET("/content", h.GetArticleContent)
}

// GetNews godoc
// @Summary Get enriched news
// @Description Get the enriched article list, optionally switching the category or free-text query first
// @Tags news
// @Produce json
// @Param category query string false "Category tab"
// @Param query query string false "Free-text search"
// @Success 200 {object} dto.NewsState
// @Router /news [get]
func (h *NewsHandler) GetNews(c echo.Context) error {
	category := c.QueryParam("category")
	query := c.QueryParam("query")

	// Category wins when both are supplied and the category is not the
	// "all" sentinel.
	switch {
	case category != "" && category != common.CategoryAll:
		return c.JSON(http.StatusOK, h.newsService.SetSelector(c.Request().Context(), entity.SelectCategory(category)))
	case query != "":
		return c.JSON(http.StatusOK, h.newsService.SetSelector(c.Request().Context(), entity.SelectQuery(query)))
	case category != "":
		return c.JSON(http.StatusOK, h.newsService.SetSelector(c.Request().Context(), entity.SelectCategory(category)))
	default:
		return c.JSON(http.StatusOK, h.newsService.Snapshot())
	}
}

// RefreshNews godoc
// @Summary Refresh the news feed
// @Description Refetch and re-enrich articles with the current selection
// @Tags news
// @Produce json
// @Success 200 {object} dto.NewsState
// @Router /news/refresh [post]
func (h *NewsHandler) RefreshNews(c echo.Context) error {
	return c.JSON(http.StatusOK, h.newsService.Refresh(c.Request().Context()))
}

// GetArticleContent godoc
// @Summary Extract readable article text
// @Description Download an article page and return its readable body text
// @Tags news
// @Produce json
// @Param url query string true "Article URL"
// @Success 200 {object} dto.ArticleContentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /news/content [get]
func (h *NewsHandler) GetArticleContent(c echo.Context) error {
	pageURL := c.QueryParam("url")
	if pageURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url query parameter is required"})
	}

	content, err := h.contentRepo.GetContent(c.Request().Context(), pageURL)
	if err != nil {
		h.logger.Error("Failed to extract article content", logger.ErrorField(err), logger.StringField("url", pageURL))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to extract article content"})
	}

	return c.JSON(http.StatusOK, dto.ArticleContentResponse{URL: pageURL, Content: content})
}
