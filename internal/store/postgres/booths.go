package postgres

import (
	"context"
	"database/sql"
	"errors"

	"boothq/internal/models"
	"boothq/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateBooth(ctx context.Context, booth models.Booth) (models.Booth, error) {
	var exists bool
	row := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM booths WHERE name = $1)`, booth.Name)
	if err := row.Scan(&exists); err != nil {
		return models.Booth{}, err
	}
	if exists {
		return models.Booth{}, store.ErrDuplicateBoothName
	}

	row = s.pool.QueryRow(ctx, `
		INSERT INTO booths (name, location, description, pdf_file_path, operator_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, booth.Name, booth.Location, booth.Description, booth.PDFPath, booth.OperatorID, booth.Active)
	if err := row.Scan(&booth.ID, &booth.CreatedAt, &booth.UpdatedAt); err != nil {
		return models.Booth{}, err
	}
	return booth, nil
}

// UpsertBoothByName creates the booth or refreshes its description and
// active flag, used by the admin QR generator which keys booths by name.
func (s *Store) UpsertBoothByName(ctx context.Context, name, description string) (models.Booth, error) {
	var booth models.Booth
	var pdfPath, location sql.NullString
	var operatorID sql.NullInt64
	row := s.pool.QueryRow(ctx, `
		INSERT INTO booths (name, location, description, is_active)
		VALUES ($1, '', $2, TRUE)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description, is_active = TRUE, updated_at = now()
		RETURNING id, name, location, description, pdf_file_path, operator_id, is_active, created_at, updated_at
	`, name, description)
	err := row.Scan(&booth.ID, &booth.Name, &location, &booth.Description,
		&pdfPath, &operatorID, &booth.Active, &booth.CreatedAt, &booth.UpdatedAt)
	if err != nil {
		return models.Booth{}, err
	}
	booth.Location = nullString(location)
	booth.PDFPath = nullString(pdfPath)
	if operatorID.Valid {
		booth.OperatorID = operatorID.Int64
	}
	return booth, nil
}

func (s *Store) UpdateBooth(ctx context.Context, booth models.Booth) error {
	var conflict bool
	row := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM booths WHERE name = $1 AND id <> $2)
	`, booth.Name, booth.ID)
	if err := row.Scan(&conflict); err != nil {
		return err
	}
	if conflict {
		return store.ErrDuplicateBoothName
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE booths
		SET name = $1, location = $2, description = $3, pdf_file_path = $4,
			is_active = $5, updated_at = now()
		WHERE id = $6
	`, booth.Name, booth.Location, booth.Description, booth.PDFPath, booth.Active, booth.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrBoothNotFound
	}
	return nil
}

func (s *Store) GetBooth(ctx context.Context, id int64) (models.Booth, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, location, description, pdf_file_path, operator_id, is_active, created_at, updated_at
		FROM booths
		WHERE id = $1
	`, id)
	booth, err := scanBooth(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booth{}, store.ErrBoothNotFound
		}
		return models.Booth{}, err
	}
	return booth, nil
}

func (s *Store) GetBoothByName(ctx context.Context, name string) (models.Booth, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, location, description, pdf_file_path, operator_id, is_active, created_at, updated_at
		FROM booths
		WHERE name = $1
	`, name)
	booth, err := scanBooth(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booth{}, store.ErrBoothNotFound
		}
		return models.Booth{}, err
	}
	return booth, nil
}

func (s *Store) ListActiveBooths(ctx context.Context) ([]store.BoothListing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.name, b.location, b.description, b.pdf_file_path, b.operator_id,
			b.is_active, b.created_at, b.updated_at,
			(SELECT COUNT(*) FROM queue_entries q
				WHERE q.booth_id = b.id AND q.status = 'waiting') AS queue_count
		FROM booths b
		WHERE b.is_active = TRUE
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []store.BoothListing
	for rows.Next() {
		var listing store.BoothListing
		var pdfPath, location sql.NullString
		var operatorID sql.NullInt64
		if err := rows.Scan(&listing.ID, &listing.Name, &location, &listing.Description,
			&pdfPath, &operatorID, &listing.Active, &listing.CreatedAt, &listing.UpdatedAt,
			&listing.QueueCount); err != nil {
			return nil, err
		}
		listing.Location = nullString(location)
		listing.PDFPath = nullString(pdfPath)
		if operatorID.Valid {
			listing.OperatorID = operatorID.Int64
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *Store) ListBoothsByOperator(ctx context.Context, operatorID int64) ([]models.Booth, error) {
	return s.listBooths(ctx, `
		SELECT id, name, location, description, pdf_file_path, operator_id, is_active, created_at, updated_at
		FROM booths
		WHERE operator_id = $1
		ORDER BY created_at DESC
	`, operatorID)
}

func (s *Store) ListBooths(ctx context.Context) ([]models.Booth, error) {
	return s.listBooths(ctx, `
		SELECT id, name, location, description, pdf_file_path, operator_id, is_active, created_at, updated_at
		FROM booths
		ORDER BY created_at DESC
	`)
}

func (s *Store) listBooths(ctx context.Context, query string, args ...any) ([]models.Booth, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var booths []models.Booth
	for rows.Next() {
		booth, err := scanBooth(rows)
		if err != nil {
			return nil, err
		}
		booths = append(booths, booth)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return booths, nil
}

func (s *Store) DeleteBoothByName(ctx context.Context, name string) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var boothID int64
	row := tx.QueryRow(ctx, `SELECT id FROM booths WHERE name = $1`, name)
	if err = row.Scan(&boothID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrBoothNotFound
		}
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM queue_entries WHERE booth_id = $1`, boothID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM queue_sequences WHERE booth_id = $1`, boothID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM booths WHERE id = $1`, boothID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ClearBooths(ctx context.Context) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM queue_entries`); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM queue_sequences`); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM booths`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanBooth(row rowScanner) (models.Booth, error) {
	var booth models.Booth
	var pdfPath, location sql.NullString
	var operatorID sql.NullInt64
	err := row.Scan(&booth.ID, &booth.Name, &location, &booth.Description,
		&pdfPath, &operatorID, &booth.Active, &booth.CreatedAt, &booth.UpdatedAt)
	if err != nil {
		return models.Booth{}, err
	}
	booth.Location = nullString(location)
	booth.PDFPath = nullString(pdfPath)
	if operatorID.Valid {
		booth.OperatorID = operatorID.Int64
	}
	return booth, nil
}
