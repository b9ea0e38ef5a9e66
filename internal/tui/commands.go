package tui

import (
	"context"
	"time"

	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/Veraticus/the-truth-must-out/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// infoTimeout bounds the header lookup; the analysis call itself has none.
const infoTimeout = 5 * time.Second

// analyze runs the submission off the event loop and reports its completion.
func (m Model) analyze(sub *session.Submission) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return analysisCompleteMsg{completion: sub.Run(ctx)}
	}
}

// fetchServiceInfo asks the service which model it runs.
func (m Model) fetchServiceInfo() tea.Cmd {
	if m.config.Info == nil {
		return nil
	}

	parent := m.ctx
	info := m.config.Info
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, infoTimeout)
		defer cancel()

		resp, err := info.Info(ctx)
		return serviceInfoMsg{info: resp, err: err}
	}
}

// expireToast schedules removal of a notification.
func expireToast(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// toast is a notification on screen.
type toast struct {
	notification model.Notification
	id           int
}
