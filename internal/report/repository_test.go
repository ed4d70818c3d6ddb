package report

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pregnancy-tracker/internal/assessment"
)

var reportCols = []string{
	"id", "user_id", "date", "systolic", "diastolic", "blood_sugar", "weight",
	"current_week", "mood", "notes", "health_score", "risk_percentage",
	"ai_report", "report_generated", "source",
}

func reportRow(rep DailyReport) []driver.Value {
	return []driver.Value{
		rep.ID, rep.UserID, rep.Date,
		rep.BloodPressure.Systolic, rep.BloodPressure.Diastolic,
		rep.BloodSugar, rep.Weight, rep.CurrentWeek, rep.Mood, rep.Notes,
		rep.HealthScore, rep.RiskPercentage, rep.AIReport, rep.ReportGenerated,
		string(rep.Source),
	}
}

func sampleReport(userID uuid.UUID) DailyReport {
	return DailyReport{
		ID:              uuid.New(),
		UserID:          userID,
		Date:            time.Now().Truncate(time.Second),
		BloodPressure:   assessment.BloodPressure{Systolic: 120, Diastolic: 80},
		BloodSugar:      100,
		Weight:          150,
		CurrentWeek:     22,
		Mood:            "Happy",
		HealthScore:     100,
		RiskPercentage:  10,
		AIReport:        "All good.",
		ReportGenerated: true,
		Source:          assessment.SourceAI,
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	rep := sampleReport(uuid.New())

	mock.ExpectExec("INSERT INTO daily_reports").
		WithArgs(
			rep.ID, rep.UserID, rep.Date,
			rep.BloodPressure.Systolic, rep.BloodPressure.Diastolic,
			rep.BloodSugar, rep.Weight, rep.CurrentWeek, rep.Mood, rep.Notes,
			rep.HealthScore, rep.RiskPercentage, rep.AIReport, rep.ReportGenerated, rep.Source,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &rep))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAssignsIDAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	rep := sampleReport(uuid.New())
	rep.ID = uuid.Nil
	rep.Date = time.Time{}

	mock.ExpectExec("INSERT INTO daily_reports").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &rep))
	assert.NotEqual(t, uuid.Nil, rep.ID)
	assert.False(t, rep.Date.IsZero())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()
	rep := sampleReport(userID)

	mock.ExpectQuery("SELECT (.+) FROM daily_reports WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(rep.ID, userID).
		WillReturnRows(sqlmock.NewRows(reportCols).AddRow(reportRow(rep)...))

	got, err := repo.GetByID(context.Background(), userID, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM daily_reports").
		WillReturnRows(sqlmock.NewRows(reportCols))

	_, err = repo.GetByID(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()
	first := sampleReport(userID)
	second := sampleReport(userID)

	mock.ExpectQuery("SELECT (.+) FROM daily_reports WHERE user_id = \\$1 ORDER BY date DESC").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(reportCols).
			AddRow(reportRow(first)...).
			AddRow(reportRow(second)...))

	got, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestRepository_ListRecentPassesLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM daily_reports WHERE user_id = \\$1 ORDER BY date DESC LIMIT \\$2").
		WithArgs(userID, 7).
		WillReturnRows(sqlmock.NewRows(reportCols))

	got, err := repo.ListRecent(context.Background(), userID, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
