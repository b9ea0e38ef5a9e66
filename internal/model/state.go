package model

// RequestState tracks the lifecycle of the analysis request.
type RequestState int

// Request states.
const (
	StateIdle RequestState = iota
	StatePending
	StateSucceeded
	StateFailed
)

// String returns a lowercase name for logs and JSON output.
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
