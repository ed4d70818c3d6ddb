package assessment

import (
	"context"
	"math"
	"strings"
)

// BloodPressure is a single reading in mmHg.
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// HealthSnapshot is one day's worth of self-reported metrics. The caller is
// responsible for clamping Week to [1,40] before handing it to this package.
type HealthSnapshot struct {
	BloodPressure BloodPressure `json:"bloodPressure"`
	BloodSugar    float64       `json:"bloodSugar"` // mg/dL
	Weight        float64       `json:"weight"`     // lbs
	Mood          string        `json:"mood"`
	Week          int           `json:"week"`
	Notes         string        `json:"notes,omitempty"`
}

// Assessment holds the two derived scores. They are tuned independently:
// HealthScore is the coarse wellness gauge shown in the UI, RiskPercentage
// drives alerting. Do not merge them.
type Assessment struct {
	HealthScore    int `json:"healthScore"`
	RiskPercentage int `json:"riskPercentage"`
}

// HighRiskThreshold is the alert trigger inherited from the client UI.
// Any RiskPercentage at or above it must surface a high-risk alert.
const HighRiskThreshold = 61

// HighRisk reports whether this assessment crosses the alert threshold.
func (a Assessment) HighRisk() bool {
	return a.RiskPercentage >= HighRiskThreshold
}

// Patient is the slice of the user record the assessment engine needs.
type Patient struct {
	Name string
	Week int
}

// TextGenerator produces a completion for a single text prompt. A nil
// generator means no AI backend is configured and callers go straight to
// their deterministic path.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Trimester derives the trimester from a gestational week. The divisor is the
// legacy 13.33 constant; the result is pinned to 1..3 so late weeks (where
// ceil would yield 4) stay in the third trimester.
func Trimester(week int) int {
	t := int(math.Ceil(float64(week) / 13.33))
	if t < 1 {
		t = 1
	}
	if t > 3 {
		t = 3
	}
	return t
}

// Mood comparisons are case-insensitive throughout. The legacy system mixed
// "Stressed" and "stressed" between branches; this normalizes the lot.
func moodStressed(mood string) bool {
	return strings.EqualFold(mood, "stressed") || strings.EqualFold(mood, "anxious")
}

func moodTired(mood string) bool {
	return strings.EqualFold(mood, "tired")
}
