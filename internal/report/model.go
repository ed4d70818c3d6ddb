package report

import (
	"time"

	"github.com/google/uuid"

	"pregnancy-tracker/internal/assessment"
)

// DailyReport is one submitted metrics snapshot plus everything derived from
// it.
type DailyReport struct {
	ID              uuid.UUID                `json:"id"`
	UserID          uuid.UUID                `json:"userId"`
	Date            time.Time                `json:"date"`
	BloodPressure   assessment.BloodPressure `json:"bloodPressure"`
	BloodSugar      float64                  `json:"bloodSugar"`
	Weight          float64                  `json:"weight"`
	CurrentWeek     int                      `json:"currentWeek"`
	Mood            string                   `json:"mood"`
	Notes           string                   `json:"notes,omitempty"`
	HealthScore     int                      `json:"healthScore"`
	RiskPercentage  int                      `json:"riskPercentage"`
	AIReport        string                   `json:"aiReport"`
	ReportGenerated bool                     `json:"reportGenerated"`
	Source          assessment.Source        `json:"source"`
}

// Snapshot rebuilds the assessment input from a stored report.
func (r *DailyReport) Snapshot() assessment.HealthSnapshot {
	return assessment.HealthSnapshot{
		BloodPressure: r.BloodPressure,
		BloodSugar:    r.BloodSugar,
		Weight:        r.Weight,
		Mood:          r.Mood,
		Week:          r.CurrentWeek,
		Notes:         r.Notes,
	}
}

// HighRisk reports whether this report crosses the alert threshold.
func (r *DailyReport) HighRisk() bool {
	return r.RiskPercentage >= assessment.HighRiskThreshold
}
