package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

type fakeNewsService struct {
	state    dto.NewsState
	setCalls []entity.Selector
	snaps    int
	refreshs int
}

func (f *fakeNewsService) Snapshot() dto.NewsState {
	f.snaps++
	return f.state
}

func (f *fakeNewsService) SetSelector(_ context.Context, sel entity.Selector) dto.NewsState {
	f.setCalls = append(f.setCalls, sel)
	return f.state
}

func (f *fakeNewsService) Refresh(_ context.Context) dto.NewsState {
	f.refreshs++
	return f.state
}

type fakeContentRepo struct {
	content string
	err     error
	lastURL string
}

func (f *fakeContentRepo) GetContent(_ context.Context, url string) (string, error) {
	f.lastURL = url
	return f.content, f.err
}

func performRequest(h *NewsHandler, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e.Group("/news"))
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetNews_NoParamsReturnsSnapshot(t *testing.T) {
	svc := &fakeNewsService{state: dto.NewsState{Category: "all", Query: "stocks"}}
	h := NewNewsHandler(svc, &fakeContentRepo{}, newTestLogger(t))

	rec := performRequest(h, http.MethodGet, "/news")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.snaps)
	assert.Empty(t, svc.setCalls)
}

func TestGetNews_CategoryParam(t *testing.T) {
	svc := &fakeNewsService{}
	h := NewNewsHandler(svc, &fakeContentRepo{}, newTestLogger(t))

	performRequest(h, http.MethodGet, "/news?category=business")

	require.Len(t, svc.setCalls, 1)
	assert.Equal(t, entity.SelectCategory("business"), svc.setCalls[0])
}

func TestGetNews_QueryParam(t *testing.T) {
	svc := &fakeNewsService{}
	h := NewNewsHandler(svc, &fakeContentRepo{}, newTestLogger(t))

	performRequest(h, http.MethodGet, "/news?query=TSLA")

	require.Len(t, svc.setCalls, 1)
	assert.Equal(t, entity.SelectQuery("TSLA"), svc.setCalls[0])
}

func TestGetNews_CategoryWinsOverQuery(t *testing.T) {
	svc := &fakeNewsService{}
	h := NewNewsHandler(svc, &fakeContentRepo{}, newTestLogger(t))

	performRequest(h, http.MethodGet, "/news?category=business&query=TSLA")

	require.Len(t, svc.setCalls, 1)
	assert.Equal(t, entity.SelectCategory("business"), svc.setCalls[0])
}

func TestGetNews_AllCategoryYieldsToQuery(t *testing.T) {
	svc := &fakeNewsService{}
	h := NewNewsHandler(svc, &fakeContentRepo{}, newTestLogger(t))

	performRequest(h, http.MethodGet, "/news?category=all&query=TSLA")

	require.Len(t, svc.setCalls, 1)
	assert.Equal(t, entity.SelectQuery("TSLA"), svc.setCalls[0])
}

func TestRefreshNews(t *testing.T) {
	svc := &fakeNewsService{}
	h := NewNewsHandler(svc, &fakeContentRepo{}, newTestLogger(t))

	rec := performRequest(h, http.MethodPost, "/news/refresh")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.refreshs)
}

func TestGetArticleContent(t *testing.T) {
	repo := &fakeContentRepo{content: "readable text"}
	h := NewNewsHandler(&fakeNewsService{}, repo, newTestLogger(t))

	rec := performRequest(h, http.MethodGet, "/news/content?url=https%3A%2F%2Fexample.com%2Fstory")

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.ArticleContentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "readable text", body.Content)
	assert.Equal(t, "https://example.com/story", repo.lastURL)
}

func TestGetArticleContent_MissingURL(t *testing.T) {
	h := NewNewsHandler(&fakeNewsService{}, &fakeContentRepo{}, newTestLogger(t))

	rec := performRequest(h, http.MethodGet, "/news/content")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetArticleContent_ExtractionFailure(t *testing.T) {
	h := NewNewsHandler(&fakeNewsService{}, &fakeContentRepo{err: errors.New("paywalled")}, newTestLogger(t))

	rec := performRequest(h, http.MethodGet, "/news/content?url=https%3A%2F%2Fexample.com")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
