package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"boothq/internal/models"
	"boothq/internal/store"
)

// boothNameSep joins booth names into the certificates booth_names column.
// A unit separator cannot appear in user input, unlike a comma.
const boothNameSep = "\x1f"

func (s *Store) GetCertificateByIdentity(ctx context.Context, identity models.Identity) (models.Certificate, error) {
	key := identity.Key()
	row := s.pool.QueryRow(ctx, `
		SELECT id, certificate_number, school, grade, class, number, name, booth_count, booth_names, issued_at
		FROM certificates
		WHERE school = $1 AND grade = $2 AND class = $3 AND number = $4 AND name = $5
	`, key.School, key.Grade, key.Class, key.Number, key.Name)
	return scanCertificate(row)
}

func (s *Store) GetCertificateByNumber(ctx context.Context, number string) (models.Certificate, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, certificate_number, school, grade, class, number, name, booth_count, booth_names, issued_at
		FROM certificates
		WHERE certificate_number = $1
	`, number)
	return scanCertificate(row)
}

// IssueCertificate allocates the next number under a singleton sequence row
// lock so concurrent issuers for different students never collide, and a
// unique index on the identity tuple guarantees at most one certificate per
// student even if two requests race on the same identity.
func (s *Store) IssueCertificate(ctx context.Context, input store.IssueCertificateInput) (models.Certificate, bool, error) {
	key := input.Identity.Key()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Certificate{}, false, err
	}
	defer tx.Rollback(ctx)

	existing, err := getCertificateByIdentityTx(ctx, tx, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrCertificateNotFound) {
		return models.Certificate{}, false, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO certificate_sequences (id, next_seq) VALUES (1, 0)
		ON CONFLICT (id) DO NOTHING
	`); err != nil {
		return models.Certificate{}, false, err
	}

	var nextSeq int
	if err := tx.QueryRow(ctx, `
		SELECT next_seq FROM certificate_sequences WHERE id = 1 FOR UPDATE
	`).Scan(&nextSeq); err != nil {
		return models.Certificate{}, false, err
	}

	var number string
	if nextSeq == 0 {
		// Fresh sequence row: seed from the latest stored number so the
		// counter survives redeploys against an existing table.
		nextSeq, number = s.seedSequence(ctx, tx, input)
	} else {
		nextSeq++
		number = store.FormatCertificateNumber(input.Prefix, input.YearSuffix, nextSeq)
	}

	names := strings.Join(input.BoothNames, boothNameSep)
	row := tx.QueryRow(ctx, `
		INSERT INTO certificates (certificate_number, school, grade, class, number, name, booth_count, booth_names, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (school, grade, class, number, name) DO NOTHING
		RETURNING id
	`, number, key.School, key.Grade, key.Class, key.Number, key.Name,
		input.BoothCount, names, input.IssuedAt)

	cert := models.Certificate{
		Number:     number,
		Identity:   key,
		BoothCount: input.BoothCount,
		BoothNames: input.BoothNames,
		IssuedAt:   input.IssuedAt,
	}
	if err := row.Scan(&cert.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the identity race to a concurrent issuer.
			existing, err := getCertificateByIdentityTx(ctx, tx, key)
			if err != nil {
				return models.Certificate{}, false, err
			}
			if err := tx.Commit(ctx); err != nil {
				return models.Certificate{}, false, err
			}
			return existing, false, nil
		}
		return models.Certificate{}, false, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE certificate_sequences SET next_seq = $1 WHERE id = 1
	`, nextSeq); err != nil {
		return models.Certificate{}, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Certificate{}, false, err
	}
	return cert, true, nil
}

// seedSequence derives the first sequence value from the latest stored
// certificate number. An unparseable or missing number falls back to a
// timestamp-derived pseudo-sequence rather than failing the issue.
func (s *Store) seedSequence(ctx context.Context, tx pgx.Tx, input store.IssueCertificateInput) (int, string) {
	var latest string
	err := tx.QueryRow(ctx, `
		SELECT certificate_number FROM certificates ORDER BY id DESC LIMIT 1
	`).Scan(&latest)
	if errors.Is(err, pgx.ErrNoRows) {
		return 1, store.FormatCertificateNumber(input.Prefix, input.YearSuffix, 1)
	}
	if err != nil {
		return 0, store.FallbackCertificateNumber(input.Prefix, input.YearSuffix, input.IssuedAt)
	}
	seq, ok := store.ParseCertificateSequence(latest, input.Prefix, input.YearSuffix)
	if !ok {
		return 0, store.FallbackCertificateNumber(input.Prefix, input.YearSuffix, input.IssuedAt)
	}
	return seq + 1, store.FormatCertificateNumber(input.Prefix, input.YearSuffix, seq+1)
}

func (s *Store) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, certificate_number, school, grade, class, number, name, booth_count, booth_names, issued_at
		FROM certificates
		ORDER BY issued_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []models.Certificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return certs, nil
}

func getCertificateByIdentityTx(ctx context.Context, tx pgx.Tx, key models.Identity) (models.Certificate, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, certificate_number, school, grade, class, number, name, booth_count, booth_names, issued_at
		FROM certificates
		WHERE school = $1 AND grade = $2 AND class = $3 AND number = $4 AND name = $5
	`, key.School, key.Grade, key.Class, key.Number, key.Name)
	return scanCertificate(row)
}

func scanCertificate(row pgx.Row) (models.Certificate, error) {
	var cert models.Certificate
	var names string
	err := row.Scan(&cert.ID, &cert.Number, &cert.Identity.School, &cert.Identity.Grade,
		&cert.Identity.Class, &cert.Identity.Number, &cert.Identity.Name,
		&cert.BoothCount, &names, &cert.IssuedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Certificate{}, store.ErrCertificateNotFound
	}
	if err != nil {
		return models.Certificate{}, err
	}
	if names != "" {
		cert.BoothNames = strings.Split(names, boothNameSep)
	}
	return cert, nil
}
