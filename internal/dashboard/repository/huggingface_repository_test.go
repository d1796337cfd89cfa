package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradepulse/internal/dashboard/config"
	"tradepulse/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

func huggingFaceConfig(baseURL string) *config.Config {
	return &config.Config{
		HuggingFace: config.HuggingFace{
			Token:               "test-token",
			BaseURL:             baseURL,
			Model:               "ProsusAI/finbert",
			MaxRequestPerMinute: 6000,
		},
	}
}

func TestHuggingFaceClassify(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`[[{"label":"positive","score":0.91},{"label":"neutral","score":0.06},{"label":"negative","score":0.03}]]`))
	}))
	defer server.Close()

	repo := NewHuggingFaceRepository(huggingFaceConfig(server.URL), newTestLogger(t), nil)

	result, err := repo.Classify(context.Background(), "shares surge on earnings beat")
	require.NoError(t, err)

	assert.Equal(t, "positive", result.Label)
	assert.Equal(t, 0.91, result.Score)
	assert.Equal(t, "/models/ProsusAI/finbert", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.JSONEq(t, `{"inputs":"shares surge on earnings beat"}`, gotBody)
}

func TestHuggingFaceClassify_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The inference API returns 503 while the model is loading.
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	repo := NewHuggingFaceRepository(huggingFaceConfig(server.URL), newTestLogger(t), nil)

	_, err := repo.Classify(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHuggingFaceClassify_MalformedPayload(t *testing.T) {
	payloads := []string{`{}`, `[]`, `[[]]`, `not json`}
	for _, payload := range payloads {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		}))

		repo := NewHuggingFaceRepository(huggingFaceConfig(server.URL), newTestLogger(t), nil)
		_, err := repo.Classify(context.Background(), "anything")
		assert.Error(t, err, "payload %q should not classify", payload)

		server.Close()
	}
}
