// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Label is the categorical verdict returned by the classification service.
type Label string

// Label constants.
const (
	LabelTrue  Label = "true"
	LabelFalse Label = "false"
)

// ErrUnknownLabel is returned when a label is neither "true" nor "false".
var ErrUnknownLabel = errors.New("unknown label")

// ParseLabel converts a wire label into a Label.
func ParseLabel(s string) (Label, error) {
	switch Label(strings.TrimSpace(s)) {
	case LabelTrue:
		return LabelTrue, nil
	case LabelFalse:
		return LabelFalse, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLabel, s)
	}
}

// IsTrue reports whether the label marks the text as truthful.
func (l Label) IsTrue() bool {
	return l == LabelTrue
}

// AnalysisResult is the verdict for one submitted text.
// Probability and label always come from the same response.
type AnalysisResult struct {
	Label            Label   `json:"label"`
	TruthProbability float64 `json:"truth_probability"`
}

// NewAnalysisResult validates a probability/label pair.
func NewAnalysisResult(probability float64, label string) (AnalysisResult, error) {
	if probability < 0 || probability > 1 || math.IsNaN(probability) {
		return AnalysisResult{}, fmt.Errorf("truth probability %v outside [0,1]", probability)
	}

	parsed, err := ParseLabel(label)
	if err != nil {
		return AnalysisResult{}, err
	}

	return AnalysisResult{
		TruthProbability: probability,
		Label:            parsed,
	}, nil
}
