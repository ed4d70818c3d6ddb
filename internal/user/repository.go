package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT id, name, email, phone, pregnancy_start_date, current_week, emergency_contacts, doctor_contact, created_at FROM users WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var u User
	var contactsJSON, doctorJSON []byte

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PregnancyStartDate,
		&u.CurrentWeek,
		&contactsJSON,
		&doctorJSON,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(contactsJSON) > 0 {
		if err := json.Unmarshal(contactsJSON, &u.EmergencyContacts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal emergency contacts: %w", err)
		}
	}
	if len(doctorJSON) > 0 {
		if err := json.Unmarshal(doctorJSON, &u.DoctorContact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal doctor contact: %w", err)
		}
	}

	return &u, nil
}

func (r *postgresRepo) Save(ctx context.Context, u *User) error {
	contactsJSON, err := json.Marshal(u.EmergencyContacts)
	if err != nil {
		return err
	}
	doctorJSON, err := json.Marshal(u.DoctorContact)
	if err != nil {
		return err
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (id, name, email, phone, pregnancy_start_date, current_week, emergency_contacts, doctor_contact, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = $2,
			email = $3,
			phone = $4,
			pregnancy_start_date = $5,
			current_week = $6,
			emergency_contacts = $7,
			doctor_contact = $8
	`
	_, err = r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.PregnancyStartDate, u.CurrentWeek, contactsJSON, doctorJSON, u.CreatedAt)
	return err
}

// Delete removes the user row. Reports, chat history, training data, and
// journal entries go with it via ON DELETE CASCADE.
func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
