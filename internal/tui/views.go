package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/Veraticus/the-truth-must-out/internal/session"
	"github.com/Veraticus/the-truth-must-out/internal/tui/themes"
	"github.com/Veraticus/the-truth-must-out/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// renderScreen renders the whole page.
func (m Model) renderScreen() string {
	snap := m.session.Snapshot()

	sections := []string{m.renderHeader()}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections,
		m.renderCard(snap),
		m.renderFooter(),
		m.help.View(m.keymap),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title block.
func (m Model) renderHeader() string {
	width := m.contentWidth() + 6
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		center.Render(m.theme.Title.Render("Fake News Detector")),
		center.Render(m.theme.Subtitle.Render("Powered by "+m.modelName)),
		"",
	)
}

// renderCard renders the input, action and result area.
func (m Model) renderCard(snap session.Snapshot) string {
	parts := []string{
		m.theme.Bold.Render("Enter text to analyze:"),
		m.input.View(),
		"",
		m.renderButton(snap),
	}

	if snap.Result != nil {
		parts = append(parts, "", m.renderDivider(), m.renderResult(*snap.Result))
	}

	switch snap.State {
	case model.StatePending:
		parts = append(parts, "", m.renderLoading())
	case model.StateFailed:
		parts = append(parts, "", m.theme.StatusError.Render("✗ "+snap.ErrorMessage))
	}

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderButton renders the analyze action, dimmed when it cannot fire.
func (m Model) renderButton(snap session.Snapshot) string {
	if snap.State == model.StatePending {
		return m.theme.ButtonDisabled.Render("Analyzing...")
	}
	if strings.TrimSpace(snap.Text) == "" {
		return m.theme.ButtonDisabled.Render("Analyze Text")
	}
	return m.theme.Button.Render("Analyze Text")
}

func (m Model) renderDivider() string {
	return lipgloss.NewStyle().
		Foreground(m.theme.Border).
		Render(strings.Repeat("─", m.contentWidth()))
}

// renderLoading renders the in-flight indicator.
func (m Model) renderLoading() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.spinner.View(),
		" ",
		m.theme.StatusPending.Render("Analyzing your text with AI..."),
	)
}

// renderResult renders the verdict, probability bar and interpretation.
func (m Model) renderResult(result model.AnalysisResult) string {
	view := viewmodel.NewAnalysisView(result)
	width := m.contentWidth()

	heading := m.theme.Bold.Render("Analysis Result")
	badge := m.theme.Badge.
		Background(tierColor(m.theme, view.Badge)).
		Render(view.LabelText)
	headerRow := spaceBetween(heading, badge, width)

	label := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Truth Probability")
	pct := lipgloss.NewStyle().
		Bold(true).
		Foreground(tierColor(m.theme, view.Tier)).
		Render(fmt.Sprintf("%d%%", view.Percentage))
	probabilityRow := spaceBetween(label, pct, width)

	bar := m.bars[view.Tier]

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerRow,
		"",
		probabilityRow,
		bar.ViewAs(float64(view.Percentage)/100),
		"",
		m.renderInterpretation(view.Interpretation),
	)
}

// renderInterpretation renders the success or error styled panel.
func (m Model) renderInterpretation(in viewmodel.Interpretation) string {
	icon, style := "✓", m.theme.StatusSuccess
	color := m.theme.Success
	if in.Status == viewmodel.PanelError {
		icon, style = "!", m.theme.StatusError
		color = m.theme.Error
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		style.Render(icon+" "+in.Title),
		m.theme.Normal.Render(in.Description),
	)

	return m.theme.Panel.BorderForeground(color).Render(body)
}

// renderToasts renders active notifications, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		n := t.notification
		var style lipgloss.Style
		var icon string
		switch n.Level {
		case model.LevelSuccess:
			style, icon = m.theme.StatusSuccess, "✓"
		case model.LevelWarning:
			style, icon = m.theme.StatusWarning, "⚠"
		default:
			style, icon = m.theme.StatusError, "✗"
		}
		lines = append(lines, style.Render(icon+" "+n.Title)+" "+m.theme.Normal.Render(n.Description))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderFooter renders the disclaimer.
func (m Model) renderFooter() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		muted.Render("This tool uses "+m.modelName+" for zero-shot classification."),
		muted.Render("Results are AI-generated and should not be taken as absolute truth."),
		"",
	)
}

// tierColor maps a confidence band onto the theme palette.
func tierColor(theme themes.Theme, tier viewmodel.Tier) lipgloss.Color {
	switch tier {
	case viewmodel.TierPositive:
		return theme.Success
	case viewmodel.TierNeutral:
		return theme.Warning
	default:
		return theme.Error
	}
}

// spaceBetween places left and right at opposite ends of width.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
