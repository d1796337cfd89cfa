package http

import (
	"net/http"
	"strconv"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/service"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AlertHandler handles HTTP requests for price alerts.
type AlertHandler struct {
	alertService service.AlertService
	logger       *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary Register a price alert
// @Tags alerts
// @Accept json
// @Produce json
// @Param body body dto.CreateAlertRequest true "Alert to register"
// @Success 201 {object} entity.PriceAlert
// @Failure 400 {object} dto.ErrorResponse
// @Router /alerts [post]
func (h *AlertHandler) Create(c echo.Context) error {
	var req dto.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	alert, err := h.alertService.CreateAlert(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, alert)
}

// List godoc
// @Summary List price alerts
// @Tags alerts
// @Produce json
// @Success 200 {array} entity.PriceAlert
// @Router /alerts [get]
func (h *AlertHandler) List(c echo.Context) error {
	alerts, err := h.alertService.GetAllAlerts(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list alerts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// Delete godoc
// @Summary Delete a price alert
// @Tags alerts
// @Param id path int true "Alert ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid alert id"})
	}

	if err := h.alertService.DeleteAlert(c.Request().Context(), uint(id)); err != nil {
		h.logger.Error("Failed to delete alert", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete alert"})
	}
	return c.NoContent(http.StatusNoContent)
}
