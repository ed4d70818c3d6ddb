package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pregnancy-tracker/internal/metrics"
)

// Mailer delivers transactional email. Defined here to decouple from the
// specific delivery backend.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// UpdateProfileRequest carries a partial profile update; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name              *string             `json:"name"`
	Email             *string             `json:"email"`
	Phone             *string             `json:"phone"`
	CurrentWeek       *int                `json:"currentWeek"`
	EmergencyContacts *[]EmergencyContact `json:"emergencyContacts"`
	DoctorContact     *DoctorContact      `json:"doctorContact"`
}

type Service interface {
	Profile(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
	RequestDeletion(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, otp string) error
}

type service struct {
	repo   Repository
	otp    *OTPStore
	mailer Mailer
	log    *zap.Logger
}

func NewService(repo Repository, otp *OTPStore, mailer Mailer, log *zap.Logger) Service {
	return &service{repo: repo, otp: otp, mailer: mailer, log: log}
}

// Profile loads the user and refreshes CurrentWeek from the pregnancy start
// date. The stored week can lag when the app is not opened for a while.
func (s *service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if week := u.WeekAt(time.Now()); week != u.CurrentWeek {
		u.CurrentWeek = week
		if err := s.repo.Save(ctx, u); err != nil {
			s.log.Warn("failed to persist recalculated week",
				zap.String("user_id", id.String()), zap.Error(err))
		}
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.EmergencyContacts != nil {
		u.EmergencyContacts = *req.EmergencyContacts
	}
	if req.DoctorContact != nil {
		u.DoctorContact = *req.DoctorContact
	}
	if req.CurrentWeek != nil {
		week := *req.CurrentWeek
		if week < 1 || week > maxWeek {
			return nil, fmt.Errorf("current week must be between 1 and %d", maxWeek)
		}
		// Editing the week moves the start date so future recalculations
		// agree with it.
		u.CurrentWeek = week
		u.PregnancyStartDate = StartDateForWeek(week, time.Now())
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return u, nil
}

func (s *service) RequestDeletion(ctx context.Context, id uuid.UUID) error {
	if s.mailer == nil {
		return fmt.Errorf("email delivery is not configured")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	otp, err := s.otp.Issue(ctx, id.String())
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"You have requested to delete your Pregnancy Tracker account. "+
			"To confirm this action, please use the following OTP:\n\n"+
			"    %s\n\n"+
			"This OTP will expire in 5 minutes.\n\n"+
			"If you did not request this, please ignore this email. Your account will remain safe.",
		u.Name, otp,
	)
	if err := s.mailer.Send(ctx, u.Email, "Account Deletion OTP - Pregnancy Tracker", body); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	metrics.OTPEmailsSent.Inc()
	s.log.Info("deletion otp sent", zap.String("user_id", id.String()))
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, otp string) error {
	if err := s.otp.Verify(ctx, id.String(), otp); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("account deleted", zap.String("user_id", id.String()))
	return nil
}
