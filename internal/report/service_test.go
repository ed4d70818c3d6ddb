package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pregnancy-tracker/internal/assessment"
	"pregnancy-tracker/internal/user"
)

type fakeRepo struct {
	reports []DailyReport
	failing bool
}

func (f *fakeRepo) Create(_ context.Context, r *DailyReport) error {
	if f.failing {
		return errors.New("db down")
	}
	f.reports = append(f.reports, *r)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, reportID uuid.UUID) (*DailyReport, error) {
	for _, r := range f.reports {
		if r.ID == reportID && r.UserID == userID {
			cp := r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]DailyReport, error) {
	out := []DailyReport{}
	for _, r := range f.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]DailyReport, error) {
	out, err := f.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUsers struct {
	user *user.User
}

func (f *fakeUsers) Profile(_ context.Context, id uuid.UUID) (*user.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, user.ErrNotFound
	}
	cp := *f.user
	return &cp, nil
}

type erroringAI struct{}

func (erroringAI) Generate(context.Context, string) (string, error) {
	return "", errors.New("upstream 503")
}

func testUser(week int) *user.User {
	return &user.User{
		ID:                 uuid.New(),
		Name:               "Priya",
		Email:              "priya@example.com",
		PregnancyStartDate: user.StartDateForWeek(week, time.Now()),
		CurrentWeek:        week,
	}
}

func newTestService(t *testing.T, u *user.User, gen assessment.TextGenerator) (Service, *fakeRepo) {
	log := zaptest.NewLogger(t)
	repo := &fakeRepo{}
	rg := assessment.NewReportGenerator(gen, assessment.DefaultKnowledgeBase(), log)
	return NewService(repo, &fakeUsers{user: u}, rg, log), repo
}

func TestService_CreatePersistsFallbackWhenAIErrors(t *testing.T) {
	u := testUser(10)
	svc, repo := newTestService(t, u, erroringAI{})

	resp, err := svc.Create(context.Background(), u.ID, CreateRequest{
		BloodPressure: assessment.BloodPressure{Systolic: 150, Diastolic: 95},
		BloodSugar:    130,
		Weight:        145,
		Mood:          "Anxious",
	})
	require.NoError(t, err, "report creation never fails on AI errors")

	assert.Equal(t, assessment.SourceFallback, resp.Source)
	assert.Equal(t, 70, resp.HealthScore)
	assert.Equal(t, 70, resp.RiskPercentage)
	assert.True(t, resp.HighRisk, "70 crosses the alert threshold")
	assert.True(t, resp.ReportGenerated)
	assert.Contains(t, resp.AIReport, "# Health Report for Priya")

	require.Len(t, repo.reports, 1)
	assert.Equal(t, resp.DailyReport, repo.reports[0])
}

func TestService_CreateUsesAIWhenAvailable(t *testing.T) {
	u := testUser(22)
	svc, _ := newTestService(t, u, cannedAI("RISK_PERCENTAGE: 72\nNarrative."))

	resp, err := svc.Create(context.Background(), u.ID, CreateRequest{
		BloodPressure: assessment.BloodPressure{Systolic: 120, Diastolic: 80},
		BloodSugar:    100,
		Weight:        150,
		Mood:          "Happy",
	})
	require.NoError(t, err)

	assert.Equal(t, assessment.SourceAI, resp.Source)
	assert.Equal(t, 72, resp.RiskPercentage)
	assert.True(t, resp.HighRisk, "72 crosses the alert threshold")
	assert.Equal(t, "Narrative.", resp.AIReport)
	assert.Equal(t, 22, resp.CurrentWeek, "week comes from the profile, not the request")
}

type cannedAI string

func (c cannedAI) Generate(context.Context, string) (string, error) {
	return string(c), nil
}

func TestService_CreateUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, testUser(10), erroringAI{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateRequest{})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestService_CreateStoreFailure(t *testing.T) {
	u := testUser(10)
	log := zaptest.NewLogger(t)
	repo := &fakeRepo{failing: true}
	rg := assessment.NewReportGenerator(nil, assessment.DefaultKnowledgeBase(), log)
	svc := NewService(repo, &fakeUsers{user: u}, rg, log)

	_, err := svc.Create(context.Background(), u.ID, CreateRequest{Mood: "Happy"})
	assert.Error(t, err)
}

func TestService_GetScopedToUser(t *testing.T) {
	u := testUser(10)
	svc, _ := newTestService(t, u, nil)

	resp, err := svc.Create(context.Background(), u.ID, CreateRequest{Mood: "Happy"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), u.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New(), resp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
