package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pregnancy-tracker/internal/assessment"
	"pregnancy-tracker/internal/metrics"
	"pregnancy-tracker/internal/user"
)

// UserDirectory is the slice of the user service this package needs. Defined
// here to decouple from the user service implementation.
type UserDirectory interface {
	Profile(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Generator turns a snapshot into a narrative report. It never fails: when the
// AI backend is down it falls back to a deterministic template.
type Generator interface {
	Generate(ctx context.Context, p assessment.Patient, s assessment.HealthSnapshot, a assessment.Assessment) assessment.GeneratedReport
}

// CreateRequest carries one day's self-reported metrics. The week is derived
// server-side from the pregnancy start date, never trusted from the client.
type CreateRequest struct {
	BloodPressure assessment.BloodPressure `json:"bloodPressure"`
	BloodSugar    float64                  `json:"bloodSugar"`
	Weight        float64                  `json:"weight"`
	Mood          string                   `json:"mood"`
	Notes         string                   `json:"notes"`
}

// CreateResponse is the stored report plus the alert flag the client acts on.
type CreateResponse struct {
	DailyReport
	HighRisk bool `json:"highRisk"`
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*CreateResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]DailyReport, error)
	Get(ctx context.Context, userID, reportID uuid.UUID) (*DailyReport, error)
	ExportPDF(ctx context.Context, userID, reportID uuid.UUID) ([]byte, error)
}

type service struct {
	repo      Repository
	users     UserDirectory
	generator Generator
	log       *zap.Logger
}

func NewService(repo Repository, users UserDirectory, generator Generator, log *zap.Logger) Service {
	return &service{repo: repo, users: users, generator: generator, log: log}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*CreateResponse, error) {
	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := assessment.HealthSnapshot{
		BloodPressure: req.BloodPressure,
		BloodSugar:    req.BloodSugar,
		Weight:        req.Weight,
		Mood:          req.Mood,
		Week:          u.CurrentWeek,
		Notes:         req.Notes,
	}
	scores := assessment.Score(snapshot)

	generated := s.generator.Generate(ctx, assessment.Patient{Name: u.Name, Week: u.CurrentWeek}, snapshot, scores)

	rep := &DailyReport{
		ID:              uuid.New(),
		UserID:          userID,
		Date:            time.Now(),
		BloodPressure:   req.BloodPressure,
		BloodSugar:      req.BloodSugar,
		Weight:          req.Weight,
		CurrentWeek:     u.CurrentWeek,
		Mood:            req.Mood,
		Notes:           req.Notes,
		HealthScore:     scores.HealthScore,
		RiskPercentage:  generated.RiskPercentage,
		AIReport:        generated.Narrative,
		ReportGenerated: true,
		Source:          generated.Source,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	metrics.ReportsGenerated.WithLabelValues(string(generated.Source)).Inc()
	if rep.HighRisk() {
		metrics.HighRiskReports.Inc()
		s.log.Warn("high risk report",
			zap.String("user_id", userID.String()),
			zap.Int("risk_percentage", rep.RiskPercentage),
			zap.Int("week", rep.CurrentWeek))
	}

	return &CreateResponse{DailyReport: *rep, HighRisk: rep.HighRisk()}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DailyReport, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, reportID uuid.UUID) (*DailyReport, error) {
	return s.repo.GetByID(ctx, userID, reportID)
}

func (s *service) ExportPDF(ctx context.Context, userID, reportID uuid.UUID) ([]byte, error) {
	rep, err := s.repo.GetByID(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return renderPDF(u.Name, rep)
}
