package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/storage"
)

const overrideColumns = "id, app, ignore_quiet_hours, keywords, created_at, updated_at"

func (s *Store) AddOverride(o models.AppOverride) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO app_overrides (`+overrideColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.App, o.IgnoreQuietHours, models.JoinKeywords(o.Keywords), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("override for %q: %w", o.App, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert override: %w", err)
	}
	return nil
}

func (s *Store) GetOverride(app string) (models.AppOverride, error) {
	row := s.db.QueryRow("SELECT "+overrideColumns+" FROM app_overrides WHERE app = $1", app)
	o, err := scanOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AppOverride{}, fmt.Errorf("override for %q: %w", app, storage.ErrNotFound)
	}
	if err != nil {
		return models.AppOverride{}, fmt.Errorf("failed to get override: %w", err)
	}
	return o, nil
}

func (s *Store) GetAllOverrides() ([]models.AppOverride, error) {
	rows, err := s.db.Query("SELECT " + overrideColumns + " FROM app_overrides ORDER BY app ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []models.AppOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func (s *Store) UpdateOverride(o models.AppOverride) error {
	if err := o.Validate(); err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE app_overrides
		SET ignore_quiet_hours = $1, keywords = $2, updated_at = $3
		WHERE app = $4
	`, o.IgnoreQuietHours, models.JoinKeywords(o.Keywords), time.Now().UTC(), o.App)
	if err != nil {
		return fmt.Errorf("failed to update override: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("override for %q: %w", o.App, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteOverride(app string) error {
	res, err := s.db.Exec("DELETE FROM app_overrides WHERE app = $1", app)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("override for %q: %w", app, storage.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOverride(sc scanner) (models.AppOverride, error) {
	var o models.AppOverride
	var keywords string
	if err := sc.Scan(&o.ID, &o.App, &o.IgnoreQuietHours, &keywords, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return models.AppOverride{}, err
	}
	o.Keywords = models.SplitKeywords(keywords)
	return o, nil
}
