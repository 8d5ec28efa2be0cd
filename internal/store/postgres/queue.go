package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"boothq/internal/models"
	"boothq/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Store) Apply(ctx context.Context, input store.ApplyInput) (models.QueueEntry, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.QueueEntry{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var boothID int64
	row := tx.QueryRow(ctx, `SELECT id FROM booths WHERE id = $1`, input.BoothID)
	if err = row.Scan(&boothID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrBoothNotFound
		}
		return models.QueueEntry{}, err
	}

	// Locking the booth's sequence row serializes concurrent applications
	// for the same booth, so the duplicate check and the position
	// increment below cannot interleave.
	_, err = tx.Exec(ctx, `
		INSERT INTO queue_sequences (booth_id, next_position)
		VALUES ($1, 0)
		ON CONFLICT (booth_id) DO NOTHING
	`, input.BoothID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	var current int
	row = tx.QueryRow(ctx, `
		SELECT next_position FROM queue_sequences WHERE booth_id = $1 FOR UPDATE
	`, input.BoothID)
	if err = row.Scan(&current); err != nil {
		return models.QueueEntry{}, err
	}

	var active bool
	row = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM queue_entries
			WHERE booth_id = $1 AND student_id = $2 AND status IN ('waiting', 'called')
		)
	`, input.BoothID, input.StudentID)
	if err = row.Scan(&active); err != nil {
		return models.QueueEntry{}, err
	}
	if active {
		err = store.ErrDuplicateApplication
		return models.QueueEntry{}, err
	}

	var position int
	row = tx.QueryRow(ctx, `
		UPDATE queue_sequences
		SET next_position = next_position + 1
		WHERE booth_id = $1
		RETURNING next_position
	`, input.BoothID)
	if err = row.Scan(&position); err != nil {
		return models.QueueEntry{}, err
	}

	appliedAt := input.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now().UTC()
	}

	entry := models.QueueEntry{
		StudentID: input.StudentID,
		BoothID:   input.BoothID,
		Position:  position,
		Status:    models.StatusWaiting,
		AppliedAt: appliedAt,
	}
	row = tx.QueryRow(ctx, `
		INSERT INTO queue_entries (student_id, booth_id, queue_position, status, applied_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, entry.StudentID, entry.BoothID, entry.Position, entry.Status, entry.AppliedAt)
	if err = row.Scan(&entry.ID); err != nil {
		return models.QueueEntry{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.QueueEntry{}, err
	}
	return entry, nil
}

func (s *Store) ListBoothQueue(ctx context.Context, boothID int64) ([]models.QueueEntryView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT q.id, q.student_id, q.booth_id, q.queue_position, q.status,
			q.applied_at, q.called_at, q.completed_at,
			s.name, s.school, s.grade, s.class, s.number, s.phone,
			(SELECT COUNT(*) FROM queue_entries w
				WHERE w.booth_id = q.booth_id AND w.status = 'waiting'
					AND w.queue_position < q.queue_position) AS ahead
		FROM queue_entries q
		JOIN students s ON s.id = q.student_id
		WHERE q.booth_id = $1
		ORDER BY q.queue_position ASC
	`, boothID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.QueueEntryView
	for rows.Next() {
		var view models.QueueEntryView
		var calledAt, completedAt sql.NullTime
		var phone sql.NullString
		if err := rows.Scan(&view.ID, &view.StudentID, &view.BoothID, &view.Position, &view.Status,
			&view.AppliedAt, &calledAt, &completedAt,
			&view.StudentName, &view.StudentSchool, &view.StudentGrade, &view.StudentClass,
			&view.StudentNumber, &phone, &view.Ahead); err != nil {
			return nil, err
		}
		view.CalledAt = nullTimePtr(calledAt)
		view.CompletedAt = nullTimePtr(completedAt)
		view.StudentPhone = nullString(phone)
		entries = append(entries, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) ListStudentQueue(ctx context.Context, studentID int64) ([]models.StudentQueueView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT q.id, q.student_id, q.booth_id, q.queue_position, q.status,
			q.applied_at, q.called_at, q.completed_at,
			b.name, b.location, b.description,
			(SELECT COUNT(*) FROM queue_entries w
				WHERE w.booth_id = q.booth_id AND w.status = 'waiting'
					AND w.queue_position < q.queue_position) AS ahead
		FROM queue_entries q
		JOIN booths b ON b.id = q.booth_id
		WHERE q.student_id = $1
		ORDER BY q.applied_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.StudentQueueView
	for rows.Next() {
		var view models.StudentQueueView
		var calledAt, completedAt sql.NullTime
		if err := rows.Scan(&view.ID, &view.StudentID, &view.BoothID, &view.Position, &view.Status,
			&view.AppliedAt, &calledAt, &completedAt,
			&view.BoothName, &view.BoothLocation, &view.BoothDescription, &view.Ahead); err != nil {
			return nil, err
		}
		view.CalledAt = nullTimePtr(calledAt)
		view.CompletedAt = nullTimePtr(completedAt)
		entries = append(entries, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) GetEntryDetail(ctx context.Context, entryID int64) (store.QueueEntryDetail, error) {
	var detail store.QueueEntryDetail
	var calledAt, completedAt sql.NullTime
	var phone sql.NullString
	row := s.pool.QueryRow(ctx, `
		SELECT q.id, q.student_id, q.booth_id, q.queue_position, q.status,
			q.applied_at, q.called_at, q.completed_at,
			s.name, s.phone, b.name, b.location
		FROM queue_entries q
		JOIN students s ON s.id = q.student_id
		JOIN booths b ON b.id = q.booth_id
		WHERE q.id = $1
	`, entryID)
	err := row.Scan(&detail.Entry.ID, &detail.Entry.StudentID, &detail.Entry.BoothID,
		&detail.Entry.Position, &detail.Entry.Status,
		&detail.Entry.AppliedAt, &calledAt, &completedAt,
		&detail.StudentName, &phone, &detail.BoothName, &detail.BoothLocation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.QueueEntryDetail{}, store.ErrEntryNotFound
		}
		return store.QueueEntryDetail{}, err
	}
	detail.Entry.CalledAt = nullTimePtr(calledAt)
	detail.Entry.CompletedAt = nullTimePtr(completedAt)
	detail.StudentPhone = nullString(phone)
	return detail, nil
}

func (s *Store) MarkCalled(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
	return s.updateEntryStatus(ctx, entryID, `
		WITH current AS (
			SELECT status FROM queue_entries WHERE id = $1 FOR UPDATE
		), updated AS (
			UPDATE queue_entries
			SET status = 'called', called_at = $2
			WHERE id = $1
			RETURNING id, student_id, booth_id, queue_position, status, applied_at, called_at, completed_at
		)
		SELECT updated.id, updated.student_id, updated.booth_id, updated.queue_position,
			updated.status, updated.applied_at, updated.called_at, updated.completed_at,
			current.status
		FROM updated JOIN current ON TRUE
	`, at)
}

func (s *Store) MarkCompleted(ctx context.Context, entryID int64, at time.Time) (models.QueueEntry, string, error) {
	return s.updateEntryStatus(ctx, entryID, `
		WITH current AS (
			SELECT status FROM queue_entries WHERE id = $1 FOR UPDATE
		), updated AS (
			UPDATE queue_entries
			SET status = 'completed', completed_at = $2
			WHERE id = $1
			RETURNING id, student_id, booth_id, queue_position, status, applied_at, called_at, completed_at
		)
		SELECT updated.id, updated.student_id, updated.booth_id, updated.queue_position,
			updated.status, updated.applied_at, updated.called_at, updated.completed_at,
			current.status
		FROM updated JOIN current ON TRUE
	`, at)
}

func (s *Store) MarkWaiting(ctx context.Context, entryID int64) (models.QueueEntry, string, error) {
	var entry models.QueueEntry
	var calledAt, completedAt sql.NullTime
	var prev string
	row := s.pool.QueryRow(ctx, `
		WITH current AS (
			SELECT status FROM queue_entries WHERE id = $1 FOR UPDATE
		), updated AS (
			UPDATE queue_entries
			SET status = 'waiting', called_at = NULL, completed_at = NULL
			WHERE id = $1
			RETURNING id, student_id, booth_id, queue_position, status, applied_at, called_at, completed_at
		)
		SELECT updated.id, updated.student_id, updated.booth_id, updated.queue_position,
			updated.status, updated.applied_at, updated.called_at, updated.completed_at,
			current.status
		FROM updated JOIN current ON TRUE
	`, entryID)
	err := row.Scan(&entry.ID, &entry.StudentID, &entry.BoothID, &entry.Position, &entry.Status,
		&entry.AppliedAt, &calledAt, &completedAt, &prev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.QueueEntry{}, "", store.ErrEntryNotFound
		}
		return models.QueueEntry{}, "", err
	}
	entry.CalledAt = nullTimePtr(calledAt)
	entry.CompletedAt = nullTimePtr(completedAt)
	return entry, prev, nil
}

func (s *Store) updateEntryStatus(ctx context.Context, entryID int64, query string, at time.Time) (models.QueueEntry, string, error) {
	var entry models.QueueEntry
	var calledAt, completedAt sql.NullTime
	var prev string
	row := s.pool.QueryRow(ctx, query, entryID, at)
	err := row.Scan(&entry.ID, &entry.StudentID, &entry.BoothID, &entry.Position, &entry.Status,
		&entry.AppliedAt, &calledAt, &completedAt, &prev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.QueueEntry{}, "", store.ErrEntryNotFound
		}
		return models.QueueEntry{}, "", err
	}
	entry.CalledAt = nullTimePtr(calledAt)
	entry.CompletedAt = nullTimePtr(completedAt)
	return entry, prev, nil
}

func (s *Store) DeleteEntry(ctx context.Context, entryID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM queue_entries WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrEntryNotFound
	}
	return nil
}
