package controllers

import (
	"context"
	"time"

	"variant-export-service/models"
	"variant-export-service/services"
)

// DefaultContextTimeout bounds catalog and store calls made by a handler.
const DefaultContextTimeout = 30 * time.Second

// ScannerAPI defines the attribute scan operation
type ScannerAPI interface {
	Scan(ctx context.Context, productIDs []int64, settings models.Settings) (*services.ScanResult, error)
}

// GeneratorAPI defines the row generation operation
type GeneratorAPI interface {
	Generate(ctx context.Context, productIDs []int64, selection models.AttributeSelection, settings models.Settings) (*services.GenerateResult, error)
}

// SessionAPI pages through stored sessions
type SessionAPI interface {
	Page(ctx context.Context, id string, page, perPage int) (*services.PageResult, error)
}

// ExporterAPI renders a session as CSV
type ExporterAPI interface {
	Export(ctx context.Context, sessionID string) ([]byte, string, error)
}

// CatalogAPI lists products for the picker
type CatalogAPI interface {
	ListProducts(ctx context.Context, params services.ListProductsParams) (*services.ProductPage, error)
}

// SettingsAPI reads and updates export settings
type SettingsAPI interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, upd services.SettingsUpdate) (models.Settings, error)
}
