package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// Store persists sessions in Postgres. The aggregate is serialized whole
// into a jsonb column; name, stage, and timestamps are mirrored as plain
// columns for listing without deserializing.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateSession(ctx context.Context, sess *workflow.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	query := `
		INSERT INTO sessions (id, name, stage, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := s.db.ExecContext(ctx, query,
		sess.ID, sess.Name, int(sess.Stage), state, sess.CreatedAt, sess.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*workflow.Session, error) {
	query := `SELECT state FROM sessions WHERE id = $1`

	var state []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&state); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}

		return nil, fmt.Errorf("select session: %w", err)
	}

	var sess workflow.Session
	if err := json.Unmarshal(state, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &sess, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *workflow.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	query := `
		UPDATE sessions
		SET name = $2, stage = $3, state = $4, updated_at = $5
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		sess.ID, sess.Name, int(sess.Stage), state, sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return session.ErrNotFound
	}

	return nil
}

func (s *Store) ListSessions(ctx context.Context) ([]*workflow.Session, error) {
	query := `SELECT state FROM sessions ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*workflow.Session

	for rows.Next() {
		var state []byte
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		var sess workflow.Session
		if err := json.Unmarshal(state, &sess); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}

		sessions = append(sessions, &sess)
	}

	return sessions, rows.Err()
}

func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
