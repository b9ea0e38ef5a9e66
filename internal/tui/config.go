package tui

import (
	"context"

	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/Veraticus/the-truth-must-out/internal/tui/themes"
)

// ServiceInfo reports which model the classification service runs.
type ServiceInfo interface {
	Info(ctx context.Context) (*detector.InfoResponse, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Predictor detector.Predictor
	Info      ServiceInfo
	Width     int
	Height    int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithPredictor sets the classification client.
func WithPredictor(p detector.Predictor) Option {
	return func(c *Config) {
		c.Predictor = p
	}
}

// WithServiceInfo sets where the header looks up the model name.
func WithServiceInfo(info ServiceInfo) Option {
	return func(c *Config) {
		c.Info = info
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
