package report

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report not found")

type Repository interface {
	Create(ctx context.Context, r *DailyReport) error
	GetByID(ctx context.Context, userID, reportID uuid.UUID) (*DailyReport, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]DailyReport, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]DailyReport, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

const reportColumns = `id, user_id, date, systolic, diastolic, blood_sugar, weight, current_week, mood, notes, health_score, risk_percentage, ai_report, report_generated, source`

func (r *postgresRepo) Create(ctx context.Context, rep *DailyReport) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.Date.IsZero() {
		rep.Date = time.Now()
	}

	query := `
		INSERT INTO daily_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.UserID, rep.Date,
		rep.BloodPressure.Systolic, rep.BloodPressure.Diastolic,
		rep.BloodSugar, rep.Weight, rep.CurrentWeek, rep.Mood, rep.Notes,
		rep.HealthScore, rep.RiskPercentage, rep.AIReport, rep.ReportGenerated, rep.Source,
	)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, reportID uuid.UUID) (*DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, reportID, userID)

	rep, err := scanReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rep, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE user_id = $1 ORDER BY date DESC`
	return r.queryReports(ctx, query, userID)
}

func (r *postgresRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE user_id = $1 ORDER BY date DESC LIMIT $2`
	return r.queryReports(ctx, query, userID, limit)
}

func (r *postgresRepo) queryReports(ctx context.Context, query string, args ...any) ([]DailyReport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []DailyReport{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*DailyReport, error) {
	var rep DailyReport
	err := row.Scan(
		&rep.ID,
		&rep.UserID,
		&rep.Date,
		&rep.BloodPressure.Systolic,
		&rep.BloodPressure.Diastolic,
		&rep.BloodSugar,
		&rep.Weight,
		&rep.CurrentWeek,
		&rep.Mood,
		&rep.Notes,
		&rep.HealthScore,
		&rep.RiskPercentage,
		&rep.AIReport,
		&rep.ReportGenerated,
		&rep.Source,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
