package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubGenerator is a canned TextGenerator for exercising both paths without
// any network.
type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func testPatient() Patient {
	return Patient{Name: "Priya", Week: 22}
}

func TestReportGenerator_ExtractsRiskMarker(t *testing.T) {
	gen := &stubGenerator{response: "RISK_PERCENTAGE: 72\n\nSome narrative about your health this week."}
	rg := NewReportGenerator(gen, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(120, 80, 100, "Happy", 22)
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))

	assert.Equal(t, 72, got.RiskPercentage)
	assert.Equal(t, SourceAI, got.Source)
	assert.Equal(t, "Some narrative about your health this week.", got.Narrative)
	assert.NotContains(t, got.Narrative, "RISK_PERCENTAGE")
}

func TestReportGenerator_MarkerCaseInsensitive(t *testing.T) {
	gen := &stubGenerator{response: "risk_percentage: 35\nNarrative text."}
	rg := NewReportGenerator(gen, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(120, 80, 100, "Happy", 22)
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))

	assert.Equal(t, 35, got.RiskPercentage)
	assert.Equal(t, "Narrative text.", got.Narrative)
}

func TestReportGenerator_MarkerMissingUsesComputedRisk(t *testing.T) {
	gen := &stubGenerator{response: "A narrative with no marker at all."}
	rg := NewReportGenerator(gen, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(150, 95, 130, "Anxious", 10) // deterministic risk 70
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))

	assert.Equal(t, 70, got.RiskPercentage)
	assert.Equal(t, SourceAI, got.Source, "AI narrative is kept even without marker")
	assert.Equal(t, "A narrative with no marker at all.", got.Narrative)
}

func TestReportGenerator_MarkerClampedToHundred(t *testing.T) {
	gen := &stubGenerator{response: "RISK_PERCENTAGE: 250\nOverheated model."}
	rg := NewReportGenerator(gen, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(120, 80, 100, "Happy", 22)
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))
	assert.Equal(t, 100, got.RiskPercentage)
}

func TestReportGenerator_AIFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 503")}
	rg := NewReportGenerator(gen, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(150, 95, 130, "Anxious", 10)
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))

	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, 70, got.RiskPercentage)
	assert.NotEmpty(t, got.Narrative)
}

func TestReportGenerator_NilGeneratorUsesFallback(t *testing.T) {
	rg := NewReportGenerator(nil, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(150, 95, 145, "Stressed", 10)
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))

	require.Equal(t, SourceFallback, got.Source)
	assert.Contains(t, got.Narrative, "# Health Report for Priya")
	assert.Contains(t, got.Narrative, "## Current Health Analysis")
	assert.Contains(t, got.Narrative, "Elevated - Monitor closely")
	assert.Contains(t, got.Narrative, "High - Dietary adjustments needed")
	assert.Contains(t, got.Narrative, "## What's Happening This Week")
	assert.Contains(t, got.Narrative, "## Recommendations")
	assert.Contains(t, got.Narrative, "Monitor blood pressure daily and reduce salt intake")
	assert.Contains(t, got.Narrative, "Follow diabetic diet and monitor blood sugar regularly")
	assert.Contains(t, got.Narrative, "Practice relaxation techniques and consider prenatal yoga")
	assert.Contains(t, got.Narrative, "Continue prenatal vitamins")
	assert.Contains(t, got.Narrative, "## When to Contact Your Doctor")
	assert.Contains(t, got.Narrative, "informational purposes only")
}

func TestReportGenerator_FallbackNormalValuesOmitConditionalBullets(t *testing.T) {
	rg := NewReportGenerator(nil, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(120, 80, 100, "Happy", 30)
	got := rg.Generate(context.Background(), testPatient(), s, Score(s))

	assert.Contains(t, got.Narrative, "Normal range")
	assert.Contains(t, got.Narrative, "Good level")
	assert.NotContains(t, got.Narrative, "reduce salt intake")
	assert.NotContains(t, got.Narrative, "diabetic diet")
	assert.Contains(t, got.Narrative, "Braxton Hicks", "third trimester paragraph")
}

func TestReportGenerator_PromptCarriesContract(t *testing.T) {
	gen := &stubGenerator{response: "RISK_PERCENTAGE: 12\nok"}
	rg := NewReportGenerator(gen, DefaultKnowledgeBase(), zaptest.NewLogger(t))

	s := snapshot(118, 76, 95, "Happy", 22)
	rg.Generate(context.Background(), testPatient(), s, Score(s))

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Priya")
	assert.Contains(t, prompt, "Pregnancy Week: 22")
	assert.Contains(t, prompt, "Trimester: 2")
	assert.Contains(t, prompt, "RISK_PERCENTAGE: [number 0-100]")
	assert.Contains(t, prompt, "118/76 mmHg")
}
