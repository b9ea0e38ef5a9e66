package viewmodel

import (
	"math"

	"github.com/Veraticus/the-truth-must-out/internal/model"
)

// Tier is a confidence band derived from the truth percentage.
type Tier int

const (
	// TierNegative covers percentages below 40.
	TierNegative Tier = iota
	// TierNeutral covers percentages from 40 up to 70.
	TierNeutral
	// TierPositive covers percentages of 70 and above.
	TierPositive
)

// Tier boundaries, inclusive on the lower edge.
const (
	PositiveThreshold = 70
	NeutralThreshold  = 40
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierPositive:
		return "positive"
	case TierNeutral:
		return "neutral"
	default:
		return "negative"
	}
}

// PanelStatus selects the style of the interpretation panel.
type PanelStatus string

// Panel statuses.
const (
	PanelSuccess PanelStatus = "success"
	PanelError   PanelStatus = "error"
)

// Interpretation is the explanatory panel shown under a result.
type Interpretation struct {
	Title       string
	Description string
	Status      PanelStatus
}

// AnalysisView holds everything needed to render one result.
type AnalysisView struct {
	LabelText      string
	Interpretation Interpretation
	Percentage     int
	Tier           Tier
	Badge          Tier
}

// NewAnalysisView derives the display values for r.
func NewAnalysisView(r model.AnalysisResult) AnalysisView {
	pct := Percentage(r)
	return AnalysisView{
		Percentage:     pct,
		Tier:           TierFor(pct),
		LabelText:      LabelText(r.Label),
		Badge:          BadgeTier(r.Label),
		Interpretation: InterpretationFor(r.Label),
	}
}

// Percentage returns the truth probability as a whole percentage in 0–100.
func Percentage(r model.AnalysisResult) int {
	pct := int(math.Round(r.TruthProbability * 100))
	return max(0, min(100, pct))
}

// TierFor maps a percentage onto its confidence band.
func TierFor(pct int) Tier {
	switch {
	case pct >= PositiveThreshold:
		return TierPositive
	case pct >= NeutralThreshold:
		return TierNeutral
	default:
		return TierNegative
	}
}

// LabelText returns the badge text for a label.
func LabelText(l model.Label) string {
	if l.IsTrue() {
		return "Likely True"
	}
	return "Likely False"
}

// BadgeTier returns the band used to color the label badge.
func BadgeTier(l model.Label) Tier {
	if l.IsTrue() {
		return TierPositive
	}
	return TierNegative
}

// InterpretationFor returns the explanatory panel for a label.
func InterpretationFor(l model.Label) Interpretation {
	if l.IsTrue() {
		return Interpretation{
			Title:       "This text appears to be truthful",
			Description: "The AI model has high confidence this content is legitimate.",
			Status:      PanelSuccess,
		}
	}
	return Interpretation{
		Title:       "This text may contain misinformation",
		Description: "The AI model suggests this content may be unreliable or false.",
		Status:      PanelError,
	}
}
