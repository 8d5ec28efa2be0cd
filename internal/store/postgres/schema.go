package postgres

import "context"

// Bootstrap creates the tables and indexes if they do not exist yet. It is
// idempotent and runs once at startup.
func (s *Store) Bootstrap(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id BIGSERIAL PRIMARY KEY,
			student_id TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			school TEXT NOT NULL,
			grade INT NOT NULL,
			class INT NOT NULL,
			number INT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS students_identity_idx
			ON students (school, grade, class, number)`,
		`CREATE TABLE IF NOT EXISTS booth_operators (
			id BIGSERIAL PRIMARY KEY,
			operator_id TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			school TEXT NOT NULL,
			club_name TEXT NOT NULL,
			booth_topic TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS booths (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			location TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			pdf_file_path TEXT NOT NULL DEFAULT '',
			operator_id BIGINT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS queue_entries (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES students (id),
			booth_id BIGINT NOT NULL REFERENCES booths (id),
			queue_position INT NOT NULL,
			status TEXT NOT NULL DEFAULT 'waiting',
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			called_at TIMESTAMPTZ,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS queue_entries_booth_status_idx
			ON queue_entries (booth_id, status)`,
		`CREATE TABLE IF NOT EXISTS queue_sequences (
			booth_id BIGINT PRIMARY KEY,
			next_position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS checkins (
			id BIGSERIAL PRIMARY KEY,
			school TEXT NOT NULL,
			grade INT NOT NULL,
			class INT NOT NULL,
			number INT NOT NULL,
			name TEXT NOT NULL,
			booth TEXT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS checkins_identity_idx
			ON checkins (school, grade, class, number, name)`,
		`CREATE TABLE IF NOT EXISTS certificates (
			id BIGSERIAL PRIMARY KEY,
			certificate_number TEXT NOT NULL UNIQUE,
			school TEXT NOT NULL,
			grade INT NOT NULL,
			class INT NOT NULL,
			number INT NOT NULL,
			name TEXT NOT NULL,
			booth_count INT NOT NULL,
			booth_names TEXT NOT NULL DEFAULT '',
			issued_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS certificates_identity_idx
			ON certificates (school, grade, class, number, name)`,
		`CREATE TABLE IF NOT EXISTS certificate_sequences (
			id INT PRIMARY KEY,
			next_seq INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			student_id BIGINT NOT NULL,
			booth_id BIGINT NOT NULL,
			recipient TEXT NOT NULL,
			message TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			subject_id BIGINT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
