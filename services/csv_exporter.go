package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	awspkg "variant-export-service/pkg/aws"

	"go.uber.org/zap"
)

var csvHeader = []string{"Terméknév", "SKU", "Leírás", "Kategóriák+Tagek+Leírás", "Méret", "Szín", "Variáns kép URL"}

const utf8BOM = "\xEF\xBB\xBF"

// CSVExporter renders a stored session as a semicolon separated file.
type CSVExporter struct {
	sessions *SessionService
	metrics  MetricsRecorder
	logger   *zap.Logger
	now      func() time.Time
}

func NewCSVExporter(sessions *SessionService, metrics MetricsRecorder, logger *zap.Logger) *CSVExporter {
	if logger == nil {
		logger = zap.L()
	}
	return &CSVExporter{sessions: sessions, metrics: metrics, logger: logger, now: time.Now}
}

// Export returns the file contents and a timestamped download name.
func (e *CSVExporter) Export(ctx context.Context, sessionID string) ([]byte, string, error) {
	session, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range session.Rows {
		image := ""
		if r.ImageURL != nil {
			image = *r.ImageURL
		}
		record := []string{r.Name, r.SKU, r.Description, r.CategoryTagDescription, r.Size, r.Color, image}
		if err := w.Write(record); err != nil {
			return nil, "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("flush csv: %w", err)
	}

	if e.metrics != nil && e.metrics.IsEnabled() {
		if err := e.metrics.RecordCount(ctx, awspkg.MetricExportDownloads, nil); err != nil {
			e.logger.Debug("Failed to record metric", zap.String("metric", awspkg.MetricExportDownloads), zap.Error(err))
		}
	}

	filename := "temu_export_" + e.now().Format("2006-01-02_150405") + ".csv"
	return buf.Bytes(), filename, nil
}
