package assessment

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Source records which path produced a report.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// GeneratedReport is the outcome of report generation. RiskPercentage is
// either extracted from the AI response or taken from the deterministic
// scorer; Narrative is prose either way.
type GeneratedReport struct {
	RiskPercentage int
	Narrative      string
	Source         Source
}

// ReportGenerator produces a health report for a daily snapshot. The AI path
// is best-effort: any failure there is absorbed and the deterministic
// template takes over, so Generate never fails.
type ReportGenerator struct {
	gen TextGenerator
	kb  KnowledgeBase
	log *zap.Logger
}

func NewReportGenerator(gen TextGenerator, kb KnowledgeBase, log *zap.Logger) *ReportGenerator {
	return &ReportGenerator{gen: gen, kb: kb, log: log}
}

// riskMarkerRe matches the output contract the AI prompt demands. Matching is
// case-insensitive because models routinely bend the casing.
var (
	riskMarkerRe     = regexp.MustCompile(`(?i)RISK_PERCENTAGE:\s*(\d+)`)
	riskMarkerLineRe = regexp.MustCompile(`(?i)RISK_PERCENTAGE:\s*\d+\s*`)
)

// Generate builds the report. Single AI attempt, no retry: one failure and
// the fallback path runs. The returned narrative is always non-empty.
func (g *ReportGenerator) Generate(ctx context.Context, p Patient, s HealthSnapshot, a Assessment) GeneratedReport {
	if g.gen != nil {
		text, err := g.gen.Generate(ctx, buildReportPrompt(p, s, a))
		if err == nil && strings.TrimSpace(text) != "" {
			return g.fromAIResponse(text, a)
		}
		g.log.Warn("ai report generation failed, using fallback report", zap.Error(err))
	}
	return GeneratedReport{
		RiskPercentage: a.RiskPercentage,
		Narrative:      g.fallbackNarrative(p, s, a),
		Source:         SourceFallback,
	}
}

func (g *ReportGenerator) fromAIResponse(text string, a Assessment) GeneratedReport {
	if m := riskMarkerRe.FindStringSubmatch(text); m != nil {
		risk, err := strconv.Atoi(m[1])
		if err == nil {
			if risk > 100 {
				risk = 100
			}
			narrative := strings.TrimSpace(riskMarkerLineRe.ReplaceAllString(text, ""))
			return GeneratedReport{RiskPercentage: risk, Narrative: narrative, Source: SourceAI}
		}
	}
	// The model ignored the output contract. Keep its prose, substitute the
	// deterministic risk figure.
	g.log.Warn("ai response missing risk marker, substituting computed risk",
		zap.Int("riskPercentage", a.RiskPercentage))
	return GeneratedReport{RiskPercentage: a.RiskPercentage, Narrative: strings.TrimSpace(text), Source: SourceAI}
}

func buildReportPrompt(p Patient, s HealthSnapshot, a Assessment) string {
	notes := s.Notes
	if notes == "" {
		notes = "None"
	}
	var b strings.Builder
	fmt.Fprintf(&b, `You are Dr. AI, a maternal health specialist. Analyze this pregnancy health data and provide:
1. RISK PERCENTAGE (0-100) based on the health metrics
2. Comprehensive health report

Patient: %s
Pregnancy Week: %d
Trimester: %d

Health Data:
- Blood Pressure: %d/%d mmHg
- Blood Sugar: %g mg/dL
- Weight: %g lbs
- Mood: %s
- Notes: %s
- Health Score: %d/100

FORMAT YOUR RESPONSE EXACTLY LIKE THIS:
RISK_PERCENTAGE: [number 0-100]

[Your detailed health analysis here]

Risk Assessment Guidelines:
- 0-20%%: Low risk (normal values, good mood)
- 21-40%%: Mild risk (slightly elevated values)
- 41-60%%: Moderate risk (concerning values, stress)
- 61-80%%: High risk (multiple elevated values)
- 81-100%%: Very high risk (dangerous values requiring immediate attention)

Consider: Blood pressure >140/90, blood sugar >140, stress/anxiety, pregnancy week complications.

Provide detailed analysis covering:
1. Current Health Analysis
2. Body Changes This Week
3. Specific Recommendations
4. When to Contact Doctor
5. Encouragement`,
		p.Name, s.Week, Trimester(s.Week),
		s.BloodPressure.Systolic, s.BloodPressure.Diastolic,
		s.BloodSugar, s.Weight, s.Mood, notes, a.HealthScore)
	return b.String()
}

// fallbackNarrative is the deterministic report. Section order is fixed:
// header, current health analysis, weekly changes, recommendations,
// doctor-contact criteria, disclaimer.
func (g *ReportGenerator) fallbackNarrative(p Patient, s HealthSnapshot, a Assessment) string {
	trimester := Trimester(s.Week)
	var b strings.Builder

	fmt.Fprintf(&b, "# Health Report for %s\n", p.Name)
	fmt.Fprintf(&b, "**Date:** %s\n", time.Now().Format("1/2/2006"))
	fmt.Fprintf(&b, "**Pregnancy Week:** %d (Trimester %d)\n\n", s.Week, trimester)

	b.WriteString("## Current Health Analysis\n")
	fmt.Fprintf(&b, "- **Blood Pressure:** %d/%d mmHg ", s.BloodPressure.Systolic, s.BloodPressure.Diastolic)
	if s.BloodPressure.Systolic > 140 || s.BloodPressure.Diastolic > 90 {
		b.WriteString("(⚠️ Elevated - Monitor closely)\n")
	} else {
		b.WriteString("(✅ Normal range)\n")
	}
	fmt.Fprintf(&b, "- **Blood Sugar:** %g mg/dL ", s.BloodSugar)
	if s.BloodSugar > 140 {
		b.WriteString("(⚠️ High - Dietary adjustments needed)\n")
	} else {
		b.WriteString("(✅ Good level)\n")
	}
	fmt.Fprintf(&b, "- **Weight:** %g lbs\n", s.Weight)
	fmt.Fprintf(&b, "- **Mood:** %s\n", s.Mood)
	fmt.Fprintf(&b, "- **Overall Health Score:** %d/100\n\n", a.HealthScore)

	b.WriteString("## What's Happening This Week\n")
	switch trimester {
	case 1:
		fmt.Fprintf(&b, "During week %d, your baby is rapidly developing. You may experience morning sickness, fatigue, and breast tenderness.\n\n", s.Week)
	case 2:
		fmt.Fprintf(&b, "Week %d brings increased energy and reduced nausea. Your baby is growing quickly and you may start feeling movements.\n\n", s.Week)
	default:
		fmt.Fprintf(&b, "At week %d, your baby is preparing for birth. You may experience increased discomfort and Braxton Hicks contractions.\n\n", s.Week)
	}

	b.WriteString("## Recommendations\n")
	if s.BloodPressure.Systolic > 140 {
		b.WriteString("- Monitor blood pressure daily and reduce salt intake\n")
	}
	if s.BloodSugar > 140 {
		b.WriteString("- Follow diabetic diet and monitor blood sugar regularly\n")
	}
	if moodStressed(s.Mood) {
		b.WriteString("- Practice relaxation techniques and consider prenatal yoga\n")
	}
	b.WriteString("- Continue prenatal vitamins\n")
	b.WriteString("- Stay hydrated and eat balanced meals\n")
	b.WriteString("- Get adequate rest and gentle exercise\n\n")

	b.WriteString("## When to Contact Your Doctor\n")
	b.WriteString("- Blood pressure consistently above 140/90\n")
	b.WriteString("- Severe headaches or vision changes\n")
	b.WriteString("- Unusual bleeding or discharge\n")
	b.WriteString("- Severe abdominal pain\n\n")

	b.WriteString("*This report is for informational purposes only. Always consult your healthcare provider for medical advice.*")

	return b.String()
}
