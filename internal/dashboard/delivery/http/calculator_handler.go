package http

import (
	"net/http"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/service"

	"github.com/labstack/echo/v4"
)

// CalculatorHandler handles position-sizing requests.
type CalculatorHandler struct {
	calculatorService service.CalculatorService
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(calculatorService service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculatorService: calculatorService}
}

// RegisterRoutes registers the calculator routes to the Echo group.
func (h *CalculatorHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/position-size", h.PositionSize)
}

// PositionSize godoc
// @Summary Compute a position size
// @Description Compute risk-based position sizing from account size, risk percentage, entry and stop
// @Tags calculator
// @Accept json
// @Produce json
// @Param body body dto.PositionSizeRequest true "Sizing inputs"
// @Success 200 {object} dto.PositionSizeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /calculator/position-size [post]
func (h *CalculatorHandler) PositionSize(c echo.Context) error {
	var req dto.PositionSizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	result, err := h.calculatorService.PositionSize(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
