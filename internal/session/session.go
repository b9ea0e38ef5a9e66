// Package session holds the state of one analysis session: the pending input
// text, the request lifecycle, and the last result or error message.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/the-truth-must-out/internal/common"
	"github.com/Veraticus/the-truth-must-out/internal/detector"
	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/google/uuid"
)

// User-facing messages.
const (
	EmptyInputMessage = "Please enter some text to analyze"
	FallbackMessage   = "Failed to analyze text. Please try again."
)

// Notification display durations.
const (
	WarningDuration = 3 * time.Second
	SuccessDuration = 3 * time.Second
	ErrorDuration   = 5 * time.Second
)

// Session is the state container for a single user session.
type Session struct {
	predictor detector.Predictor
	result    *model.AnalysisResult
	inflight  *Submission
	text      string
	errMsg    string
	mu        sync.Mutex
	state     model.RequestState
}

// New creates an idle session that submits through predictor.
func New(predictor detector.Predictor) *Session {
	return &Session{
		predictor: predictor,
		state:     model.StateIdle,
	}
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Result       *model.AnalysisResult
	Text         string
	ErrorMessage string
	State        model.RequestState
}

// Submission is one accepted analysis request.
type Submission struct {
	predictor detector.Predictor
	ID        string
	Text      string
	StartedAt time.Time
}

// Completion is the outcome of running a Submission: either a result or an error.
type Completion struct {
	Err        error
	Submission *Submission
	Result     model.AnalysisResult
}

// Outcome reports the state a completion left the session in.
type Outcome struct {
	Result       *model.AnalysisResult
	ErrorMessage string
	Notification model.Notification
	State        model.RequestState
}

// SetText replaces the pending input text.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Text returns the pending input text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// CanSubmit reports whether Begin would accept the current text.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != model.StatePending && strings.TrimSpace(s.text) != ""
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Text:         s.text,
		State:        s.state,
		ErrorMessage: s.errMsg,
	}
	if s.result != nil {
		result := *s.result
		snap.Result = &result
	}
	return snap
}

// Inflight returns the pending submission, if any.
func (s *Session) Inflight() (*Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight, s.inflight != nil
}

// Begin validates the text and moves the session to Pending.
// Blank text yields a *common.UserError wrapping common.ErrEmptyInput and a
// second submission while one is pending yields common.ErrSubmissionInFlight;
// in both cases the state is left untouched.
func (s *Session) Begin() (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.text) == "" {
		return nil, common.NewUserError(EmptyInputMessage, common.ErrEmptyInput)
	}
	if s.state == model.StatePending {
		return nil, common.ErrSubmissionInFlight
	}

	sub := &Submission{
		ID:        uuid.NewString(),
		Text:      s.text,
		StartedAt: time.Now(),
		predictor: s.predictor,
	}

	s.state = model.StatePending
	s.result = nil
	s.errMsg = ""
	s.inflight = sub

	slog.Debug("Submission started", "id", sub.ID, "length", len(sub.Text))

	return sub, nil
}

// Run performs the single request for the submission.
func (sub *Submission) Run(ctx context.Context) Completion {
	result, err := sub.predictor.Predict(ctx, sub.Text)
	return Completion{
		Submission: sub,
		Result:     result,
		Err:        err,
	}
}

// Finish releases the in-flight state with the completion's outcome.
// Completions for anything but the in-flight submission are ignored.
func (s *Session) Finish(c Completion) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight == nil || c.Submission != s.inflight {
		slog.Debug("Ignoring stale completion")
		return s.outcomeLocked(model.Notification{})
	}
	s.inflight = nil

	elapsed := time.Since(c.Submission.StartedAt)

	if c.Err != nil {
		s.state = model.StateFailed
		s.result = nil
		s.errMsg = ErrorMessage(c.Err)

		slog.Warn("Analysis failed",
			"id", c.Submission.ID,
			"elapsed", elapsed,
			"error", c.Err)

		return s.outcomeLocked(model.Notification{
			Level:       model.LevelError,
			Title:       "Error",
			Description: s.errMsg,
			Duration:    ErrorDuration,
		})
	}

	result := c.Result
	s.state = model.StateSucceeded
	s.result = &result
	s.errMsg = ""

	slog.Debug("Analysis complete",
		"id", c.Submission.ID,
		"elapsed", elapsed,
		"label", result.Label,
		"truth_probability", result.TruthProbability)

	return s.outcomeLocked(model.Notification{
		Level:       model.LevelSuccess,
		Title:       "Analysis Complete",
		Description: "Your text has been analyzed successfully",
		Duration:    SuccessDuration,
	})
}

// Submit runs Begin, Run and Finish in sequence. The returned error is only
// set when Begin rejects the submission; request failures are reported
// through the Outcome.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	sub, err := s.Begin()
	if err != nil {
		return Outcome{}, err
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		r := recover()
		s.Finish(Completion{
			Submission: sub,
			Err:        fmt.Errorf("analysis aborted: %v", r),
		})
		if r != nil {
			panic(r)
		}
	}()

	completion := sub.Run(ctx)
	outcome := s.Finish(completion)
	finished = true

	return outcome, nil
}

// ErrorMessage extracts the user-visible message for a request error: the
// service's detail when present, the generic fallback otherwise.
func ErrorMessage(err error) string {
	if detail, ok := detector.DetailFrom(err); ok {
		return detail
	}
	return FallbackMessage
}

// WarningFor converts a Begin rejection into the notification to show.
// It returns a zero Notification for errors the user should not see.
func WarningFor(err error) model.Notification {
	if !errors.Is(err, common.ErrEmptyInput) {
		return model.Notification{}
	}
	return model.Notification{
		Level:       model.LevelWarning,
		Title:       "Error",
		Description: common.UserMessage(err, EmptyInputMessage),
		Duration:    WarningDuration,
	}
}

func (s *Session) outcomeLocked(n model.Notification) Outcome {
	outcome := Outcome{
		State:        s.state,
		ErrorMessage: s.errMsg,
		Notification: n,
	}
	if s.result != nil {
		result := *s.result
		outcome.Result = &result
	}
	return outcome
}
