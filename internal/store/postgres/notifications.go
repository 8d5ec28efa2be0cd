package postgres

import (
	"context"

	"boothq/internal/models"
)

func (s *Store) InsertNotification(ctx context.Context, notification models.Notification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, student_id, booth_id, recipient, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, notification.ID, notification.StudentID, notification.BoothID,
		notification.Recipient, notification.Message, notification.Status, notification.CreatedAt)
	return err
}

func (s *Store) ListRecentNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, student_id, booth_id, recipient, message, status, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.StudentID, &n.BoothID, &n.Recipient,
			&n.Message, &n.Status, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}
