package http

import (
	"fmt"
	"net/http"
	"strings"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/service"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChatHandler streams conversational assistant replies.
type ChatHandler struct {
	assistantService service.AssistantService
	logger           *logger.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(assistantService service.AssistantService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{assistantService: assistantService, logger: logger}
}

// RegisterRoutes registers the chat routes to the Echo group.
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Chat)
}

// Chat godoc
// @Summary Stream an assistant reply
// @Description Stream the assistant's reply to the conversation as server-sent events
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param body body dto.ChatRequest true "Conversation so far"
// @Success 200 {string} string "SSE stream of text deltas"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "messages is required"})
	}

	res := c.Response()
	started := false

	err := h.assistantService.Stream(c.Request().Context(), req.Messages, func(delta string) error {
		if !started {
			res.Header().Set(echo.HeaderContentType, "text/event-stream")
			res.Header().Set("Cache-Control", "no-cache")
			res.Header().Set("Connection", "keep-alive")
			res.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", escapeSSE(delta)); err != nil {
			return err
		}
		res.Flush()
		return nil
	})

	if err != nil {
		h.logger.Error("Failed to stream assistant reply", logger.ErrorField(err))
		// Nothing was emitted yet, so a plain error response is still
		// possible. Mid-stream failures just end the stream.
		if !started {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate assistant reply"})
		}
		return nil
	}

	if started {
		fmt.Fprint(res, "data: [DONE]\n\n")
		res.Flush()
	}
	return nil
}

// escapeSSE keeps multi-line deltas inside one SSE data frame.
func escapeSSE(delta string) string {
	return strings.ReplaceAll(delta, "\n", "\ndata: ")
}
