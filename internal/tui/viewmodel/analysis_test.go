package viewmodel

import (
	"testing"

	"github.com/Veraticus/the-truth-must-out/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		want        int
	}{
		{name: "zero", probability: 0.0, want: 0},
		{name: "one", probability: 1.0, want: 100},
		{name: "half rounds up", probability: 0.555, want: 56},
		{name: "exact half percent", probability: 0.005, want: 1},
		{name: "rounds down", probability: 0.9249, want: 92},
		{name: "typical", probability: 0.92, want: 92},
		{name: "small", probability: 0.08, want: 8},
		{name: "four places", probability: 0.6999, want: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(model.AnalysisResult{TruthProbability: tt.probability})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercentage_AlwaysInRange(t *testing.T) {
	for i := 0; i <= 10000; i++ {
		p := float64(i) / 10000
		pct := Percentage(model.AnalysisResult{TruthProbability: p})
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
	}

	assert.Equal(t, 100, Percentage(model.AnalysisResult{TruthProbability: 1.5}))
	assert.Equal(t, 0, Percentage(model.AnalysisResult{TruthProbability: -0.5}))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Tier
	}{
		{pct: 100, want: TierPositive},
		{pct: 70, want: TierPositive},
		{pct: 69, want: TierNeutral},
		{pct: 40, want: TierNeutral},
		{pct: 39, want: TierNegative},
		{pct: 0, want: TierNegative},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.pct), "percentage %d", tt.pct)
		})
	}
}

func TestLabelMapping(t *testing.T) {
	assert.Equal(t, "Likely True", LabelText(model.LabelTrue))
	assert.Equal(t, TierPositive, BadgeTier(model.LabelTrue))
	assert.Equal(t, PanelSuccess, InterpretationFor(model.LabelTrue).Status)
	assert.Equal(t, "This text appears to be truthful", InterpretationFor(model.LabelTrue).Title)

	assert.Equal(t, "Likely False", LabelText(model.LabelFalse))
	assert.Equal(t, TierNegative, BadgeTier(model.LabelFalse))
	assert.Equal(t, PanelError, InterpretationFor(model.LabelFalse).Status)
	assert.Equal(t, "This text may contain misinformation", InterpretationFor(model.LabelFalse).Title)
}

func TestNewAnalysisView(t *testing.T) {
	tests := []struct {
		name   string
		result model.AnalysisResult
		want   AnalysisView
	}{
		{
			name:   "truthful",
			result: model.AnalysisResult{TruthProbability: 0.92, Label: model.LabelTrue},
			want: AnalysisView{
				Percentage:     92,
				Tier:           TierPositive,
				LabelText:      "Likely True",
				Badge:          TierPositive,
				Interpretation: InterpretationFor(model.LabelTrue),
			},
		},
		{
			name:   "misinformation",
			result: model.AnalysisResult{TruthProbability: 0.08, Label: model.LabelFalse},
			want: AnalysisView{
				Percentage:     8,
				Tier:           TierNegative,
				LabelText:      "Likely False",
				Badge:          TierNegative,
				Interpretation: InterpretationFor(model.LabelFalse),
			},
		},
		{
			name:   "neutral band",
			result: model.AnalysisResult{TruthProbability: 0.45, Label: model.LabelFalse},
			want: AnalysisView{
				Percentage:     45,
				Tier:           TierNeutral,
				LabelText:      "Likely False",
				Badge:          TierNegative,
				Interpretation: InterpretationFor(model.LabelFalse),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := NewAnalysisView(tt.result)
			second := NewAnalysisView(tt.result)

			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, second)
		})
	}
}
