package journal

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyEntry = errors.New("entry needs a note or a photo")

// CreateRequest is a new journal moment. Week defaults to 1 when omitted.
type CreateRequest struct {
	Week  int    `json:"week"`
	Note  string `json:"note"`
	Photo string `json:"photo"`
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Entry, error)
	List(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Entry, error) {
	if strings.TrimSpace(req.Note) == "" && req.Photo == "" {
		return nil, ErrEmptyEntry
	}

	week := req.Week
	if week < 1 {
		week = 1
	}

	e := &Entry{
		UserID: userID,
		Week:   week,
		Note:   req.Note,
		Photo:  req.Photo,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, entryID)
}
