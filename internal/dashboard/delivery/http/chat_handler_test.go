package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradepulse/internal/dashboard/dto"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistantService struct {
	deltas []string
	err    error
}

func (f *fakeAssistantService) Stream(_ context.Context, _ []dto.ChatMessage, emit func(delta string) error) error {
	for _, delta := range f.deltas {
		if err := emit(delta); err != nil {
			return err
		}
	}
	return f.err
}

func performChat(t *testing.T, svc *fakeAssistantService, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := NewChatHandler(svc, newTestLogger(t))
	h.RegisterRoutes(e.Group("/chat"))
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChat_StreamsSSE(t *testing.T) {
	svc := &fakeAssistantService{deltas: []string{"The outlook ", "is mixed."}}
	rec := performChat(t, svc, `{"messages":[{"role":"user","content":"thoughts on AAPL?"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))

	body := rec.Body.String()
	assert.Contains(t, body, "data: The outlook \n\n")
	assert.Contains(t, body, "data: is mixed.\n\n")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestChat_EmptyMessages(t *testing.T) {
	rec := performChat(t, &fakeAssistantService{}, `{"messages":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_PreStreamFailureReturnsJSONError(t *testing.T) {
	svc := &fakeAssistantService{err: errors.New("model unavailable")}
	rec := performChat(t, svc, `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate assistant reply")
}

func TestEscapeSSE(t *testing.T) {
	assert.Equal(t, "line one\ndata: line two", escapeSSE("line one\nline two"))
}
