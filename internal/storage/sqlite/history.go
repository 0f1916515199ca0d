package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hush/internal/models"
)

// Fixed width so created_at sorts lexically in time order.
const historyTimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Store) RecordDelivery(r models.DeliveryRecord) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO delivery_history (id, app, text, muted, reason, delivered, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.App, r.Text, r.Muted, r.Reason, r.Delivered, r.Error, r.CreatedAt.UTC().Format(historyTimestampFormat))
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
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery history: %w", err)
	}
	defer rows.Close()

	var records []models.DeliveryRecord
	for rows.Next() {
		var r models.DeliveryRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.App, &r.Text, &r.Muted, &r.Reason, &r.Delivered, &r.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}
		if r.CreatedAt, err = time.Parse(historyTimestampFormat, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
