package services

import (
	"context"
	"time"

	"variant-export-service/models"
)

// SessionTTL is how long a generated export stays retrievable.
const SessionTTL = 30 * time.Minute

// AxisKeys names the attribute keys used for the three export axes.
type AxisKeys struct {
	Type  string `json:"attr_type"`
	Color string `json:"attr_color"`
	Size  string `json:"attr_size"`
}

// ScanResult lists the distinct attribute values found across the scanned products.
type ScanResult struct {
	Types        []string `json:"termektipus"`
	Colors       []string `json:"szin"`
	Sizes        []string `json:"meret"`
	Warnings     []string `json:"warnings"`
	SettingsUsed AxisKeys `json:"settings_used"`
}

// GenerateResult is returned after an export session has been stored.
type GenerateResult struct {
	SessionID string   `json:"session_id"`
	RowCount  int      `json:"row_count"`
	Warnings  []string `json:"warnings"`
}

// PageResult is one page of a stored session.
type PageResult struct {
	Items    []models.ExportRow `json:"items"`
	Page     int                `json:"page"`
	PerPage  int                `json:"per_page"`
	Total    int                `json:"total"`
	Warnings []string           `json:"warnings"`
}

// ListProductsParams contains parameters for the product picker listing
type ListProductsParams struct {
	Page    int
	PerPage int
	Search  string
}

// ProductPage is one page of product summaries.
type ProductPage struct {
	Items   []models.ProductSummary `json:"items"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
	Total   int                     `json:"total"`
}

// SettingsUpdate carries the fields a caller wants to change. Nil fields keep
// their stored value.
type SettingsUpdate struct {
	AttrType   *string `json:"attr_type" validate:"omitempty,max=64"`
	AttrColor  *string `json:"attr_color" validate:"omitempty,max=64"`
	AttrSize   *string `json:"attr_size" validate:"omitempty,max=64"`
	DescSource *string `json:"desc_source" validate:"omitempty,max=16"`
	JoinSep    *string `json:"join_sep" validate:"omitempty,max=32"`
}

// ExportGeneratedEvent is published after a session has been stored.
type ExportGeneratedEvent struct {
	SessionID    string    `json:"session_id"`
	RowCount     int       `json:"row_count"`
	WarningCount int       `json:"warning_count"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ImageURLResolver turns a stored image key into a public URL. A nil result
// means the row has no image.
type ImageURLResolver interface {
	Resolve(ctx context.Context, key string) *string
}

// EventPublisher announces finished exports to downstream consumers.
type EventPublisher interface {
	PublishExportGenerated(ctx context.Context, evt ExportGeneratedEvent) error
}

// MetricsRecorder records business metrics.
type MetricsRecorder interface {
	IsEnabled() bool
	RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}
