package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hush/internal/models"
)

func (s *Store) RecordDelivery(r models.DeliveryRecord) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO delivery_history (id, app, text, muted, reason, delivered, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.App, r.Text, r.Muted, r.Reason, r.Delivered, r.Error, r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}
	return nil
}

func (s *Store) RecentDeliveries(limit int) ([]models.DeliveryRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT id, app, text, muted, reason, delivered, error, created_at
		FROM delivery_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery history: %w", err)
	}
	defer rows.Close()

	var records []models.DeliveryRecord
	for rows.Next() {
		var r models.DeliveryRecord
		if err := rows.Scan(&r.ID, &r.App, &r.Text, &r.Muted, &r.Reason, &r.Delivered, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
