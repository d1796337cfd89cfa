package http

import (
	"net/http"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SentimentHandler handles ad hoc classification requests.
type SentimentHandler struct {
	sentimentRepo repository.SentimentRepository
	logger        *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(sentimentRepo repository.SentimentRepository, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{sentimentRepo: sentimentRepo, logger: logger}
}

// RegisterRoutes registers the sentiment routes to the Echo group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/classify", h.Classify)
}

// Classify godoc
// @Summary Classify one text
// @Description Classify the market sentiment of one text string
// @Tags sentiment
// @Accept json
// @Produce json
// @Param body body dto.ClassifyRequest true "Text to classify"
// @Success 200 {object} dto.ClassificationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /sentiment/classify [post]
func (h *SentimentHandler) Classify(c echo.Context) error {
	var req dto.ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}

	result, err := h.sentimentRepo.Classify(c.Request().Context(), req.Text)
	if err != nil {
		h.logger.Error("Classification failed", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Classification failed"})
	}

	return c.JSON(http.StatusOK, result)
}
