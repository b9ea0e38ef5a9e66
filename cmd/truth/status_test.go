package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProbe struct {
	infoErr   error
	healthErr error
	info      *detector.InfoResponse
	health    *detector.HealthResponse
}

func (m *mockProbe) Info(_ context.Context) (*detector.InfoResponse, error) {
	return m.info, m.infoErr
}

func (m *mockProbe) Health(_ context.Context) (*detector.HealthResponse, error) {
	return m.health, m.healthErr
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		probe := &mockProbe{
			info:   &detector.InfoResponse{Message: "Fake News Detector API", Status: "running", Model: "roberta-large-mnli"},
			health: &detector.HealthResponse{Status: "healthy", ModelLoaded: true},
		}

		var buf bytes.Buffer
		require.NoError(t, status(context.Background(), &buf, probe, "http://localhost:8000"))
		assert.Contains(t, buf.String(), "roberta-large-mnli")
		assert.Contains(t, buf.String(), "Healthy, model loaded")
	})

	t.Run("model not loaded", func(t *testing.T) {
		probe := &mockProbe{health: &detector.HealthResponse{Status: "healthy"}}

		var buf bytes.Buffer
		err := status(context.Background(), &buf, probe, "http://localhost:8000")
		require.ErrorIs(t, err, errUnhealthy)
	})

	t.Run("unreachable", func(t *testing.T) {
		probe := &mockProbe{
			infoErr:   errors.New("connection refused"),
			healthErr: errors.New("connection refused"),
		}

		var buf bytes.Buffer
		err := status(context.Background(), &buf, probe, "http://localhost:8000")
		require.ErrorIs(t, err, errUnhealthy)
		assert.Contains(t, buf.String(), "Health check failed")
	})
}
