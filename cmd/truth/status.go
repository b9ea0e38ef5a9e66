package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/the-truth-must-out/internal/cli"
	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("classification service is not healthy")

// serviceProbe is the part of the client the status command needs.
type serviceProbe interface {
	Info(ctx context.Context) (*detector.InfoResponse, error)
	Health(ctx context.Context) (*detector.HealthResponse, error)
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the classification service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return status(cmd.Context(), cmd.OutOrStdout(), newClient(cfg), cfg.BaseURL)
		},
	}
}

// status prints the service banner and health. It fails when the service is
// unreachable or the model is not loaded.
func status(ctx context.Context, w io.Writer, probe serviceProbe, baseURL string) error {
	info, err := probe.Info(ctx)
	if err != nil {
		slog.Warn("Failed to fetch service info", "error", err)
		info = nil
	}

	health, healthErr := probe.Health(ctx)
	if healthErr != nil {
		slog.Warn("Health check failed", "error", healthErr)
		health = nil
	}

	if err := cli.NewReport(w, false).Status(baseURL, info, health); err != nil {
		return err
	}

	switch {
	case healthErr != nil:
		return fmt.Errorf("%w: %w", errUnhealthy, healthErr)
	case !health.ModelLoaded:
		return fmt.Errorf("%w: model not loaded", errUnhealthy)
	}
	return nil
}
