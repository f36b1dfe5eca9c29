// Package session persists filing sessions between wizard visits. The core
// owns no storage layout; this package is the surrounding application's
// persistence seam, with the aggregate serialized whole per the
// one-session-one-owner model.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=session
type Repository interface {
	CreateSession(ctx context.Context, s *workflow.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*workflow.Session, error)
	SaveSession(ctx context.Context, s *workflow.Session) error
	ListSessions(ctx context.Context) ([]*workflow.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create starts a new filing session at the review stage.
func (s *Service) Create(ctx context.Context, name string) (*workflow.Session, error) {
	sess := workflow.New(name)
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return sess, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*workflow.Session, error) {
	return s.repo.GetSession(ctx, id)
}

// Save writes the session back after a wizard turn. One user action, one
// complete save; no partial updates.
func (s *Service) Save(ctx context.Context, sess *workflow.Session) error {
	return s.repo.SaveSession(ctx, sess)
}

func (s *Service) List(ctx context.Context) ([]*workflow.Session, error) {
	return s.repo.ListSessions(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSession(ctx, id)
}
