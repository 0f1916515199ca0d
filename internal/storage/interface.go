package storage

import (
	"errors"

	"github.com/julianstephens/hush/internal/migration"
	"github.com/julianstephens/hush/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Per-app overrides
	AddOverride(models.AppOverride) error
	GetOverride(app string) (models.AppOverride, error)
	GetAllOverrides() ([]models.AppOverride, error)
	UpdateOverride(models.AppOverride) error
	DeleteOverride(app string) error

	// Delivery history
	RecordDelivery(models.DeliveryRecord) error
	// RecentDeliveries returns at most limit records, newest first.
	RecentDeliveries(limit int) ([]models.DeliveryRecord, error)

	// Utils
	GetConfigPath() string
	// SchemaStatus reports migration state for diagnostics.
	SchemaStatus() (migration.Status, error)
}
