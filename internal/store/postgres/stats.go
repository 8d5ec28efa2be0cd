package postgres

import (
	"context"

	"boothq/internal/store"
)

func (s *Store) QueueStats(ctx context.Context) (store.QueueStats, error) {
	var stats store.QueueStats
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM booths WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM queue_entries WHERE status = 'waiting'),
			(SELECT COUNT(*) FROM queue_entries WHERE status = 'called'),
			(SELECT COUNT(*) FROM queue_entries WHERE status = 'completed'),
			(SELECT COUNT(*) FROM booth_operators WHERE active = TRUE)
	`).Scan(&stats.TotalBooths, &stats.TotalWaiting, &stats.TotalCalled,
		&stats.TotalCompleted, &stats.TotalOperators)
	if err != nil {
		return store.QueueStats{}, err
	}
	return stats, nil
}

func (s *Store) BoothQueueStats(ctx context.Context) ([]store.BoothQueueStats, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.name, b.location, COALESCE(o.club_name, ''),
			COUNT(*) FILTER (WHERE q.status = 'waiting'),
			COUNT(*) FILTER (WHERE q.status = 'called'),
			COUNT(*) FILTER (WHERE q.status = 'completed')
		FROM booths b
		LEFT JOIN booth_operators o ON o.id = b.operator_id
		LEFT JOIN queue_entries q ON q.booth_id = b.id
		WHERE b.is_active = TRUE
		GROUP BY b.id, b.name, b.location, o.club_name
		ORDER BY b.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []store.BoothQueueStats
	for rows.Next() {
		var bs store.BoothQueueStats
		if err := rows.Scan(&bs.BoothID, &bs.Name, &bs.Location, &bs.OperatorClub,
			&bs.WaitingCount, &bs.CalledCount, &bs.CompletedCount); err != nil {
			return nil, err
		}
		stats = append(stats, bs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// clearTables lists every event table in delete order. Order matters for
// the foreign keys from queue entries to booths and students.
var clearTables = []string{
	"notifications",
	"queue_entries",
	"queue_sequences",
	"checkins",
	"certificates",
	"certificate_sequences",
	"sessions",
	"booths",
	"students",
	"booth_operators",
}

// ClearAllData wipes every event table in one transaction.
func (s *Store) ClearAllData(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range clearTables {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
