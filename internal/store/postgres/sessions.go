package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"boothq/internal/store"
)

func (s *Store) CreateSession(ctx context.Context, session store.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (session_id, kind, subject_id, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE
		SET kind = EXCLUDED.kind, subject_id = EXCLUDED.subject_id, expires_at = EXCLUDED.expires_at
	`, session.SessionID, session.Kind, session.SubjectID, session.ExpiresAt)
	return err
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (store.Session, error) {
	var session store.Session
	err := s.pool.QueryRow(ctx, `
		SELECT session_id, kind, subject_id, expires_at
		FROM sessions
		WHERE session_id = $1
	`, sessionID).Scan(&session.SessionID, &session.Kind, &session.SubjectID, &session.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Session{}, store.ErrSessionNotFound
	}
	if err != nil {
		return store.Session{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		_, _ = s.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
		return store.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	return err
}
