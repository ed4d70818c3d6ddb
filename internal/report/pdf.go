package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signintech/gopdf"

	"pregnancy-tracker/internal/assessment"
)

// Common font locations across the base images we deploy on.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// renderPDF lays out a stored daily report as a printable document.
func renderPDF(userName string, rep *DailyReport) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Pregnancy Health Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Patient: %s", userName))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Date: %s", rep.Date.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Pregnancy Week: %d (Trimester %d)", rep.CurrentWeek, assessment.Trimester(rep.CurrentWeek)))
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Health Metrics:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	metrics := []string{
		fmt.Sprintf("- Blood Pressure: %d/%d mmHg", rep.BloodPressure.Systolic, rep.BloodPressure.Diastolic),
		fmt.Sprintf("- Blood Sugar: %g mg/dL", rep.BloodSugar),
		fmt.Sprintf("- Weight: %g lbs", rep.Weight),
		fmt.Sprintf("- Mood: %s", rep.Mood),
		fmt.Sprintf("- Health Score: %d/100", rep.HealthScore),
		fmt.Sprintf("- Risk Percentage: %d%%", rep.RiskPercentage),
	}
	for _, m := range metrics {
		pdf.Cell(nil, m)
		pdf.Br(12)
	}
	pdf.Br(15)

	if rep.AIReport != "" {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Report:")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}

		for _, paragraph := range strings.Split(stripMarkdown(rep.AIReport), "\n") {
			if strings.TrimSpace(paragraph) == "" {
				pdf.Br(8)
				continue
			}
			lines, _ := pdf.SplitText(paragraph, 500)
			for _, l := range lines {
				pdf.Cell(nil, l)
				pdf.Br(12)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// stripMarkdown flattens the narrative's markdown for plain-text layout.
func stripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, strings.TrimLeft(line, "# "))
	}
	return strings.Join(out, "\n")
}
