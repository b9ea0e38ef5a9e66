package detector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/the-truth-must-out/internal/common"
	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Predict(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req PredictRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, "The sky is blue", req.Text)

			w.Header().Set("Content-Type", "application/json")
			_, err = w.Write([]byte(`{"truth_probability": 0.92, "label": "true"}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		result, err := client.Predict(context.Background(), "The sky is blue")

		require.NoError(t, err)
		assert.Equal(t, model.LabelTrue, result.Label)
		assert.InDelta(t, 0.92, result.TruthProbability, 1e-9)
	})

	t.Run("sends raw text untouched", func(t *testing.T) {
		raw := "  leading and trailing\nwhitespace  "
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req PredictRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, raw, req.Text)
			_, _ = w.Write([]byte(`{"truth_probability": 0.3, "label": "false"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL + "/").Predict(context.Background(), raw)
		require.NoError(t, err)
	})

	t.Run("error with detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail": "Model unavailable"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Predict(context.Background(), "anything")

		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Model unavailable", apiErr.Detail)
		assert.Contains(t, err.Error(), "500")

		detail, ok := DetailFrom(err)
		assert.True(t, ok)
		assert.Equal(t, "Model unavailable", detail)
	})

	t.Run("validation error list is not a detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail": [{"loc": ["body", "text"], "msg": "field required"}]}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Predict(context.Background(), "x")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Detail)
		_, ok := DetailFrom(err)
		assert.False(t, ok)
	})

	t.Run("error without body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Predict(context.Background(), "x")

		require.Error(t, err)
		_, ok := DetailFrom(err)
		assert.False(t, ok)
		assert.Equal(t, "classification service returned status 502", err.Error())
	})

	t.Run("malformed success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Predict(context.Background(), "x")
		assert.ErrorIs(t, err, common.ErrMalformedResponse)
	})

	t.Run("unknown label", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"truth_probability": 0.5, "label": "uncertain"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Predict(context.Background(), "x")
		assert.ErrorIs(t, err, common.ErrMalformedResponse)
		assert.ErrorIs(t, err, model.ErrUnknownLabel)
	})

	t.Run("probability out of range", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"truth_probability": 1.7, "label": "true"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Predict(context.Background(), "x")
		assert.ErrorIs(t, err, common.ErrMalformedResponse)
	})

	t.Run("missing probability", func(t *testing.T) {
		bodies := []string{`{"label": "false"}`, `{"truth_probability": null, "label": "true"}`}
		for _, body := range bodies {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))

			_, err := NewClient(server.URL).Predict(context.Background(), "x")
			server.Close()
			assert.ErrorIs(t, err, common.ErrMalformedResponse, body)
		}
	})

	t.Run("connection error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewClient(url).Predict(context.Background(), "x")
		require.Error(t, err)
		_, ok := DetailFrom(err)
		assert.False(t, ok)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		_, err := NewClient(server.URL, WithTimeout(50*time.Millisecond)).Predict(context.Background(), "x")
		assert.Error(t, err)
	})
}

func TestClient_InfoAndHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`{"message": "Fake News Detection API", "status": "running", "model": "roberta-large-mnli"}`))
		case "/health":
			_, _ = w.Write([]byte(`{"status": "healthy", "model_loaded": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	info, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "roberta-large-mnli", info.Model)
	assert.Equal(t, "running", info.Status)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.ModelLoaded)
}

func TestClient_Health_Unhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail": "Model not loaded"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Health(context.Background())
	detail, ok := DetailFrom(err)
	assert.True(t, ok)
	assert.Equal(t, "Model not loaded", detail)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", NewClient("http://localhost:8000/").BaseURL())
}
