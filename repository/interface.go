package repository

import (
	"context"
	"errors"
	"time"

	"variant-export-service/models"
)

var (
	// ErrNotFound is returned by catalog lookups for ids that do not resolve
	// to an entity of the requested kind.
	ErrNotFound = errors.New("record not found")
	// ErrSessionNotFound is returned for sessions that never existed or have expired.
	ErrSessionNotFound = errors.New("session not found or expired")
)

// CatalogRepo is the read side of the shop catalog used by the export pipeline.
type CatalogRepo interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// GetVariant returns ErrNotFound when id does not exist or is not a variation.
	GetVariant(ctx context.Context, id int64) (*models.Variant, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

// SessionRepo stores generated export sessions until they expire.
type SessionRepo interface {
	Put(ctx context.Context, session *models.ExportSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.ExportSession, error)
}

// SettingsRepo persists the raw export settings key/value pairs.
type SettingsRepo interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
}
