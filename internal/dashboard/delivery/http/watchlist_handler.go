package http

import (
	"net/http"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/service"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles HTTP requests for the pinned-symbol list.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Add)
	g.DELETE("/:symbol", h.Remove)
}

// List godoc
// @Summary List the watchlist
// @Description List pinned symbols with their latest quotes
// @Tags watchlist
// @Produce json
// @Success 200 {array} dto.WatchlistEntry
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	entries, err := h.watchlistService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list watchlist"})
	}
	return c.JSON(http.StatusOK, entries)
}

// Add godoc
// @Summary Pin a symbol
// @Tags watchlist
// @Accept json
// @Produce json
// @Param body body dto.AddWatchlistRequest true "Symbol to pin"
// @Success 201 {object} entity.WatchlistItem
// @Failure 400 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Add(c echo.Context) error {
	var req dto.AddWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	item, err := h.watchlistService.Add(c.Request().Context(), req.Symbol)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, item)
}

// Remove godoc
// @Summary Unpin a symbol
// @Tags watchlist
// @Param symbol path string true "Symbol to unpin"
// @Success 204
// @Router /watchlist/{symbol} [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	if err := h.watchlistService.Remove(c.Request().Context(), c.Param("symbol")); err != nil {
		h.logger.Error("Failed to remove watchlist entry", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove watchlist entry"})
	}
	return c.NoContent(http.StatusNoContent)
}
