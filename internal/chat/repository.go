package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrTrainingEntryNotFound = errors.New("training entry not found")

// historyLimit caps how many past exchanges a history read returns.
const historyLimit = 50

type Repository interface {
	SaveExchange(ctx context.Context, e *Exchange) error
	History(ctx context.Context, userID uuid.UUID) ([]Exchange, error)
	SaveTraining(ctx context.Context, t *TrainingEntry) error
	UpdateFeedback(ctx context.Context, trainingID uuid.UUID, feedback string, accuracy int, suggestions string) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) SaveExchange(ctx context.Context, e *Exchange) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
		INSERT INTO chat_history (id, user_id, question, answer, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.Question, e.Answer, e.Timestamp)
	return err
}

// History returns the most recent exchanges first, capped at historyLimit.
func (r *postgresRepo) History(ctx context.Context, userID uuid.UUID) ([]Exchange, error) {
	query := `
		SELECT id, user_id, question, answer, timestamp
		FROM chat_history
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []Exchange{}
	for rows.Next() {
		var e Exchange
		if err := rows.Scan(&e.ID, &e.UserID, &e.Question, &e.Answer, &e.Timestamp); err != nil {
			return nil, err
		}
		history = append(history, e)
	}
	return history, rows.Err()
}

func (r *postgresRepo) SaveTraining(ctx context.Context, t *TrainingEntry) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	contextJSON, err := json.Marshal(t.Context)
	if err != nil {
		return fmt.Errorf("failed to marshal user context: %w", err)
	}

	query := `
		INSERT INTO training_data (id, user_id, question, answer, user_context, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query, t.ID, t.UserID, t.Question, t.Answer, contextJSON, t.Timestamp)
	return err
}

func (r *postgresRepo) UpdateFeedback(ctx context.Context, trainingID uuid.UUID, feedback string, accuracy int, suggestions string) error {
	query := `
		UPDATE training_data
		SET feedback = $2, accuracy = $3, suggestions = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, trainingID, feedback, accuracy, suggestions)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTrainingEntryNotFound
	}
	return nil
}
