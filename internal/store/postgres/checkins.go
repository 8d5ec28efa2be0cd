package postgres

import (
	"context"

	"boothq/internal/models"
	"boothq/internal/store"
)

func (s *Store) CreateCheckIn(ctx context.Context, checkin models.CheckIn) (models.CheckIn, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO checkins (school, grade, class, number, name, booth, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, checkin.Identity.School, checkin.Identity.Grade, checkin.Identity.Class,
		checkin.Identity.Number, checkin.Identity.Name, checkin.Booth, checkin.Comment)
	if err := row.Scan(&checkin.ID, &checkin.CreatedAt); err != nil {
		return models.CheckIn{}, err
	}
	return checkin, nil
}

func (s *Store) ListCheckInsByIdentity(ctx context.Context, identity models.Identity) ([]models.CheckIn, error) {
	return s.listCheckIns(ctx, `
		SELECT id, school, grade, class, number, name, booth, comment, created_at
		FROM checkins
		WHERE school = $1 AND grade = $2 AND class = $3 AND number = $4 AND name = $5
		ORDER BY created_at DESC
	`, identity.School, identity.Grade, identity.Class, identity.Number, identity.Name)
}

func (s *Store) UpdateCheckInComment(ctx context.Context, id int64, comment string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE checkins SET comment = $1 WHERE id = $2`, comment, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (s *Store) DeleteCheckIn(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM checkins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (s *Store) ListCheckIns(ctx context.Context) ([]models.CheckIn, error) {
	return s.listCheckIns(ctx, `
		SELECT id, school, grade, class, number, name, booth, comment, created_at
		FROM checkins
		ORDER BY created_at DESC
	`)
}

func (s *Store) listCheckIns(ctx context.Context, query string, args ...any) ([]models.CheckIn, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []models.CheckIn
	for rows.Next() {
		var checkin models.CheckIn
		if err := rows.Scan(&checkin.ID, &checkin.Identity.School, &checkin.Identity.Grade,
			&checkin.Identity.Class, &checkin.Identity.Number, &checkin.Identity.Name,
			&checkin.Booth, &checkin.Comment, &checkin.CreatedAt); err != nil {
			return nil, err
		}
		checkins = append(checkins, checkin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return checkins, nil
}
