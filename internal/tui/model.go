// Package tui implements the interactive analysis screen.
package tui

import (
	"context"
	"log/slog"

	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/Veraticus/the-truth-must-out/internal/session"
	"github.com/Veraticus/the-truth-must-out/internal/tui/themes"
	"github.com/Veraticus/the-truth-must-out/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	inputPlaceholder = "Paste a news article, social media post, or any text you want to verify..."
	defaultModelName = "RoBERTa AI Model"
	maxContentWidth  = 100
)

// Model holds the main TUI state.
type Model struct {
	theme       themes.Theme
	ctx         context.Context
	session     *session.Session
	bars        map[viewmodel.Tier]progress.Model
	keymap      KeyMap
	modelName   string
	toasts      []toast
	config      Config
	help        help.Model
	input       textarea.Model
	spinner     spinner.Model
	width       int
	height      int
	nextToastID int
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(8)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spin.Style.Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:       ctx,
		config:    cfg,
		theme:     cfg.Theme,
		session:   session.New(cfg.Predictor),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		spinner:   spin,
		modelName: defaultModelName,
		width:     cfg.Width,
		height:    cfg.Height,
		bars: map[viewmodel.Tier]progress.Model{
			viewmodel.TierPositive: newBar(string(cfg.Theme.Success)),
			viewmodel.TierNeutral:  newBar(string(cfg.Theme.Warning)),
			viewmodel.TierNegative: newBar(string(cfg.Theme.Error)),
		},
	}
	m.handleResize()

	return m
}

func newBar(color string) progress.Model {
	return progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
	)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.fetchServiceInfo())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case serviceInfoMsg:
		if msg.err != nil {
			slog.Debug("Service info unavailable", "error", msg.err)
		} else if msg.info != nil && msg.info.Model != "" {
			m.modelName = msg.info.Model
		}
		return m, nil

	case analysisCompleteMsg:
		outcome := m.session.Finish(msg.completion)
		return m, m.pushToast(outcome.Notification)

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case spinner.TickMsg:
		if m.session.Snapshot().State != model.StatePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderScreen()
}

// handleKey handles keys before they reach the text area.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetText(m.input.Value())
	return m, cmd
}

// submit starts an analysis of the current text.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetText(m.input.Value())

	sub, err := m.session.Begin()
	if err != nil {
		if warning := session.WarningFor(err); !warning.IsZero() {
			return m, m.pushToast(warning)
		}
		slog.Debug("Submission ignored", "error", err)
		return m, nil
	}

	return m, tea.Batch(m.spinner.Tick, m.analyze(sub))
}

// pushToast shows a notification and schedules its removal.
func (m *Model) pushToast(n model.Notification) tea.Cmd {
	if n.IsZero() {
		return nil
	}
	m.nextToastID++
	m.toasts = append(m.toasts, toast{id: m.nextToastID, notification: n})
	return expireToast(m.nextToastID, n.Duration)
}

func (m *Model) dropToast(id int) {
	kept := make([]toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	width := m.contentWidth()
	m.input.SetWidth(width)
	m.help.Width = width
	for tier, bar := range m.bars {
		bar.Width = width
		m.bars[tier] = bar
	}
}

// contentWidth is the usable width inside the card.
func (m Model) contentWidth() int {
	// Card border (2) and padding (4)
	return max(20, min(m.width, maxContentWidth)-6)
}
