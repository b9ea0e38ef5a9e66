package tui

import (
	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/Veraticus/the-truth-must-out/internal/session"
)

// Async operation messages.
type analysisCompleteMsg struct {
	completion session.Completion
}

type serviceInfoMsg struct {
	err  error
	info *detector.InfoResponse
}

// Notification lifecycle.
type toastExpiredMsg struct {
	id int
}
