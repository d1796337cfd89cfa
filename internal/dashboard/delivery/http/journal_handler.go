package http

import (
	"errors"
	"net/http"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/service"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// JournalHandler handles HTTP requests for the trading journal.
type JournalHandler struct {
	journalService service.JournalService
	logger         *logger.Logger
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService service.JournalService, logger *logger.Logger) *JournalHandler {
	return &JournalHandler{journalService: journalService, logger: logger}
}

// RegisterRoutes registers the journal routes to the Echo group.
func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTrade)
	g.GET("", h.GetAllTrades)
	g.GET("/stats", h.GetStats)
	g.GET("/:id", h.GetTrade)
	g.PATCH("/:id", h.UpdateTrade)
	g.DELETE("/:id", h.DeleteTrade)
}

// CreateTrade godoc
// @Summary Record a trade
// @Description Add a journal entry; an exit price stores it already closed
// @Tags journal
// @Accept json
// @Produce json
// @Param body body dto.CreateTradeRequest true "Trade to record"
// @Success 201 {object} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Router /journal [post]
func (h *JournalHandler) CreateTrade(c echo.Context) error {
	var req dto.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	trade, err := h.journalService.CreateTrade(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, trade)
}

// GetAllTrades godoc
// @Summary List trades
// @Description List every journal entry, newest first
// @Tags journal
// @Produce json
// @Success 200 {array} entity.Trade
// @Router /journal [get]
func (h *JournalHandler) GetAllTrades(c echo.Context) error {
	trades, err := h.journalService.GetAllTrades(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list trades", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list trades"})
	}
	return c.JSON(http.StatusOK, trades)
}

// GetStats godoc
// @Summary Journal statistics
// @Description Aggregate PnL and win rate over closed trades
// @Tags journal
// @Produce json
// @Success 200 {object} dto.JournalStatsResponse
// @Router /journal/stats [get]
func (h *JournalHandler) GetStats(c echo.Context) error {
	stats, err := h.journalService.GetStats(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to compute journal stats", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute journal stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetTrade godoc
// @Summary Get one trade
// @Tags journal
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} entity.Trade
// @Failure 404 {object} dto.ErrorResponse
// @Router /journal/{id} [get]
func (h *JournalHandler) GetTrade(c echo.Context) error {
	trade, err := h.journalService.GetTrade(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Trade not found"})
		}
		h.logger.Error("Failed to get trade", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get trade"})
	}
	return c.JSON(http.StatusOK, trade)
}

// UpdateTrade godoc
// @Summary Update a trade
// @Description Apply partial updates; an exit price closes the trade
// @Tags journal
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param body body dto.UpdateTradeRequest true "Fields to update"
// @Success 200 {object} entity.Trade
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /journal/{id} [patch]
func (h *JournalHandler) UpdateTrade(c echo.Context) error {
	var req dto.UpdateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	trade, err := h.journalService.UpdateTrade(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Trade not found"})
		}
		h.logger.Error("Failed to update trade", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update trade"})
	}
	return c.JSON(http.StatusOK, trade)
}

// DeleteTrade godoc
// @Summary Delete a trade
// @Tags journal
// @Param id path string true "Trade ID"
// @Success 204
// @Router /journal/{id} [delete]
func (h *JournalHandler) DeleteTrade(c echo.Context) error {
	if err := h.journalService.DeleteTrade(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("Failed to delete trade", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete trade"})
	}
	return c.NoContent(http.StatusNoContent)
}
