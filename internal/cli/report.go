package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/Veraticus/the-truth-must-out/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

// barWidth is the width of the truth probability bar.
const barWidth = 40

// Report writes analysis output for a plain, non-interactive terminal.
type Report struct {
	writer io.Writer
	color  bool
}

// NewReport creates a report writing to w. color enables ANSI color codes
// in the probability bar.
func NewReport(w io.Writer, color bool) *Report {
	return &Report{writer: w, color: color}
}

// Notification prints a notification line.
func (r *Report) Notification(n model.Notification) error {
	if n.IsZero() {
		return nil
	}

	var line string
	switch n.Level {
	case model.LevelSuccess:
		line = FormatSuccess(n.Title + ": " + n.Description)
	case model.LevelWarning:
		line = FormatWarning(n.Title + ": " + n.Description)
	default:
		line = FormatError(n.Title + ": " + n.Description)
	}

	if _, err := fmt.Fprintln(r.writer, line); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

// Analysis prints the verdict box and probability bar for result.
func (r *Report) Analysis(result model.AnalysisResult) error {
	view := viewmodel.NewAnalysisView(result)

	badge := BadgeStyle.
		Foreground(TierColor(view.Badge)).
		Render(view.LabelText)
	pct := BoldStyle.
		Foreground(TierColor(view.Tier)).
		Render(fmt.Sprintf("%d%%", view.Percentage))

	panelStyle := SuccessStyle
	icon := SuccessIcon
	if view.Interpretation.Status == viewmodel.PanelError {
		panelStyle, icon = ErrorStyle, WarningIcon
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		"Verdict:           "+badge,
		"Truth Probability: "+pct,
		"",
		panelStyle.Render(icon+" "+view.Interpretation.Title),
		view.Interpretation.Description,
	)

	if _, err := fmt.Fprintln(r.writer, RenderBox("Analysis Result", content)); err != nil {
		return fmt.Errorf("failed to write analysis box: %w", err)
	}

	return r.bar(view)
}

// bar renders the probability as a filled bar.
func (r *Report) bar(view viewmodel.AnalysisView) error {
	color := progressbarColor(view.Tier)
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(r.writer),
		progressbar.OptionEnableColorCodes(r.color),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetDescription("Truth Probability"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[" + color + "]█[reset]",
			SaucerHead:    "[" + color + "]█[reset]",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)

	if err := bar.Set(view.Percentage); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}

	if _, err := fmt.Fprintln(r.writer); err != nil {
		return fmt.Errorf("failed to write newline after progress bar: %w", err)
	}
	return nil
}

// Failure prints the inline error message of a failed analysis.
func (r *Report) Failure(message string) error {
	if _, err := fmt.Fprintln(r.writer, FormatError(message)); err != nil {
		return fmt.Errorf("failed to write failure: %w", err)
	}
	return nil
}

// Status prints the service banner and health.
func (r *Report) Status(baseURL string, info *detector.InfoResponse, health *detector.HealthResponse) error {
	lines := []string{SubtleStyle.Render("Endpoint: ") + baseURL}

	if info != nil {
		lines = append(lines,
			SubtleStyle.Render("Service:  ")+info.Message,
			SubtleStyle.Render("Model:    ")+info.Model,
		)
	}

	switch {
	case health == nil:
		lines = append(lines, FormatError("Health check failed"))
	case health.Status == "healthy" && health.ModelLoaded:
		lines = append(lines, FormatSuccess("Healthy, model loaded"))
	case !health.ModelLoaded:
		lines = append(lines, FormatWarning("Service is up but the model is not loaded"))
	default:
		lines = append(lines, FormatWarning("Service status: "+health.Status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if _, err := fmt.Fprintln(r.writer, RenderBox("Classification Service", content)); err != nil {
		return fmt.Errorf("failed to write status box: %w", err)
	}
	return nil
}
