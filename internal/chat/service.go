package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pregnancy-tracker/internal/assessment"
	"pregnancy-tracker/internal/metrics"
	"pregnancy-tracker/internal/report"
	"pregnancy-tracker/internal/user"
)

// recentReportWindow is how many of the latest daily reports feed the
// responder's context.
const recentReportWindow = 7

// UserDirectory is the slice of the user service this package needs.
type UserDirectory interface {
	Profile(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// ReportSource supplies the latest daily reports, newest first.
type ReportSource interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]report.DailyReport, error)
}

// Responder answers one chat turn. It never fails.
type Responder interface {
	Respond(ctx context.Context, message string, p assessment.Patient, recent []assessment.RecentReport) (string, assessment.Source)
}

// RespondResult carries the answer plus the training-entry ID the client can
// attach feedback to.
type RespondResult struct {
	Response   string    `json:"response"`
	TrainingID uuid.UUID `json:"trainingId"`
}

// FeedbackRequest annotates an earlier answer.
type FeedbackRequest struct {
	TrainingID  uuid.UUID `json:"trainingId"`
	Feedback    string    `json:"feedback"`
	Accuracy    int       `json:"accuracy"`
	Suggestions string    `json:"suggestions"`
}

type Service interface {
	Respond(ctx context.Context, userID uuid.UUID, message string) (*RespondResult, error)
	History(ctx context.Context, userID uuid.UUID) ([]Exchange, error)
	Feedback(ctx context.Context, req FeedbackRequest) error
}

type service struct {
	repo      Repository
	users     UserDirectory
	reports   ReportSource
	responder Responder
	log       *zap.Logger
}

func NewService(repo Repository, users UserDirectory, reports ReportSource, responder Responder, log *zap.Logger) Service {
	return &service{repo: repo, users: users, reports: reports, responder: responder, log: log}
}

func (s *service) Respond(ctx context.Context, userID uuid.UUID, message string) (*RespondResult, error) {
	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentReports, err := s.reports.ListRecent(ctx, userID, recentReportWindow)
	if err != nil {
		// Chat still works without report context.
		s.log.Warn("failed to load recent reports for chat context",
			zap.String("user_id", userID.String()), zap.Error(err))
		recentReports = nil
	}

	recent := make([]assessment.RecentReport, 0, len(recentReports))
	for _, r := range recentReports {
		recent = append(recent, assessment.RecentReport{
			HealthScore: r.HealthScore,
			Mood:        r.Mood,
			Systolic:    r.BloodPressure.Systolic,
		})
	}

	answer, source := s.responder.Respond(ctx, message, assessment.Patient{Name: u.Name, Week: u.CurrentWeek}, recent)
	metrics.ChatResponses.WithLabelValues(string(source)).Inc()

	if err := s.repo.SaveExchange(ctx, &Exchange{UserID: userID, Question: message, Answer: answer}); err != nil {
		return nil, fmt.Errorf("failed to save chat exchange: %w", err)
	}

	entry := &TrainingEntry{
		UserID:   userID,
		Question: message,
		Answer:   answer,
		Context: UserContext{
			PregnancyWeek: u.CurrentWeek,
			Trimester:     assessment.Trimester(u.CurrentWeek),
		},
	}
	if len(recent) > 0 {
		score := recent[0].HealthScore
		entry.Context.HealthScore = &score
		entry.Context.Mood = recent[0].Mood
	}
	if err := s.repo.SaveTraining(ctx, entry); err != nil {
		// Feedback collection is best-effort and must not fail the chat turn.
		s.log.Warn("failed to save training entry",
			zap.String("user_id", userID.String()), zap.Error(err))
		return &RespondResult{Response: answer}, nil
	}

	return &RespondResult{Response: answer, TrainingID: entry.ID}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]Exchange, error) {
	return s.repo.History(ctx, userID)
}

func (s *service) Feedback(ctx context.Context, req FeedbackRequest) error {
	switch req.Feedback {
	case FeedbackHelpful, FeedbackNotHelpful, FeedbackPartiallyHelpful:
	default:
		return fmt.Errorf("invalid feedback value %q", req.Feedback)
	}
	if req.Accuracy != 0 && (req.Accuracy < 1 || req.Accuracy > 5) {
		return fmt.Errorf("accuracy must be between 1 and 5")
	}
	return s.repo.UpdateFeedback(ctx, req.TrainingID, req.Feedback, req.Accuracy, req.Suggestions)
}
