package http

import (
	"errors"
	"net/http"
	"strings"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/service"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles the mocked session endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers the auth routes to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
	g.PUT("/me/risk-profile", h.UpdateRiskProfile)
}

// Register godoc
// @Summary Register a user
// @Description Create a user and open a session; credentials are not verified
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "New user"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	session, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, session)
}

// Login godoc
// @Summary Open a session
// @Description Log in with any credentials; the user is created on first login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	session, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, session)
}

// Logout godoc
// @Summary Close the session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing bearer token"})
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		h.logger.Error("Failed to close session", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to close session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Get the session user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} entity.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing bearer token"})
	}

	user, err := h.authService.GetUser(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
		}
		h.logger.Error("Failed to resolve session", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to resolve session"})
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateRiskProfile godoc
// @Summary Update the risk profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RiskProfile true "Risk profile"
// @Success 200 {object} entity.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me/risk-profile [put]
func (h *AuthHandler) UpdateRiskProfile(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing bearer token"})
	}

	var profile dto.RiskProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	user, err := h.authService.UpdateRiskProfile(c.Request().Context(), token, &profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired session"})
		}
		h.logger.Error("Failed to update risk profile", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update risk profile"})
	}
	return c.JSON(http.StatusOK, user)
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return "", false
	}
	return token, true
}
