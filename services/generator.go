package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"variant-export-service/models"
	awspkg "variant-export-service/pkg/aws"
	"variant-export-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GeneratorDeps groups the collaborators of a Generator. Images, Publisher and
// Metrics are optional.
type GeneratorDeps struct {
	Catalog   repository.CatalogRepo
	Sessions  repository.SessionRepo
	Images    ImageURLResolver
	SKUs      *SKUMaker
	Publisher EventPublisher
	Metrics   MetricsRecorder
	Logger    *zap.Logger
	Now       func() time.Time
	NewID     func() string
}

// Generator expands selected variable products into export rows and stores
// them as a session.
type Generator struct {
	catalog   repository.CatalogRepo
	sessions  repository.SessionRepo
	images    ImageURLResolver
	skus      *SKUMaker
	publisher EventPublisher
	metrics   MetricsRecorder
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewGenerator(deps GeneratorDeps) *Generator {
	g := &Generator{
		catalog:   deps.Catalog,
		sessions:  deps.Sessions,
		images:    deps.Images,
		skus:      deps.SKUs,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       deps.Now,
		newID:     deps.NewID,
	}
	if g.skus == nil {
		g.skus = NewSKUMaker(nil, nil, nil)
	}
	if g.logger == nil {
		g.logger = zap.L()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.newID == nil {
		g.newID = NewSessionID
	}
	return g
}

// NewSessionID returns "exp_" followed by the 32 hex digits of a random UUID.
func NewSessionID() string {
	id := uuid.New()
	return "exp_" + hex.EncodeToString(id[:])
}

func (g *Generator) Generate(ctx context.Context, productIDs []int64, selection models.AttributeSelection, settings models.Settings) (*GenerateResult, error) {
	selTypes := newValueSet(selection.Types)
	selColors := newValueSet(selection.Colors)
	selSizes := newValueSet(selection.Sizes)

	rows := []models.ExportRow{}
	warnings := []string{}
	seen := map[string]struct{}{}

	for _, pid := range productIDs {
		p, err := resolveProduct(ctx, g.catalog, pid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		if !p.IsVariable() {
			warnings = append(warnings, fmt.Sprintf("product #%d is not a variable product (skipped)", pid))
			continue
		}

		desc := productDescription(p, settings.DescSource)
		catTagDesc := categoryTagDescription(p.Categories, p.Tags, desc, settings.JoinSep)

		for _, vid := range p.VariationIDs {
			v, err := resolveVariant(ctx, g.catalog, vid)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}

			t := lookupAttribute(v, settings.AttrType)
			c := lookupAttribute(v, settings.AttrColor)
			s := lookupAttribute(v, settings.AttrSize)
			if t == "" || c == "" || s == "" {
				warnings = append(warnings, fmt.Sprintf("variation #%d has incomplete attributes (type/color/size)", vid))
				continue
			}
			if !selTypes.accepts(t) || !selColors.accepts(c) || !selSizes.accepts(s) {
				continue
			}

			imageKey := v.ImageKey
			if imageKey == "" {
				imageKey = p.ImageKey
			}

			rows = append(rows, models.ExportRow{
				Name:                   p.Name,
				SKU:                    g.skus.Make(baseSKU(v.SKU, p.SKU, pid, vid), seen),
				Description:            desc,
				CategoryTagDescription: catTagDesc,
				Size:                   s,
				Color:                  c,
				ImageURL:               g.resolveImage(ctx, imageKey),
			})
		}
	}

	created := g.now().UTC()
	session := &models.ExportSession{
		ID:        g.newID(),
		CreatedAt: created,
		ExpiresAt: created.Add(SessionTTL),
		Rows:      rows,
		Warnings:  warnings,
	}
	if err := g.sessions.Put(ctx, session, SessionTTL); err != nil {
		return nil, fmt.Errorf("store export session: %w", err)
	}

	g.logger.Info("Export session generated",
		zap.String("session_id", session.ID),
		zap.Int("products", len(productIDs)),
		zap.Int("rows", len(rows)),
		zap.Int("warnings", len(warnings)),
	)
	g.afterGenerate(ctx, session)

	return &GenerateResult{
		SessionID: session.ID,
		RowCount:  len(rows),
		Warnings:  warnings,
	}, nil
}

func (g *Generator) resolveImage(ctx context.Context, key string) *string {
	if key == "" || g.images == nil {
		return nil
	}
	return g.images.Resolve(ctx, key)
}

// afterGenerate publishes the event and business metrics. Failures are logged only.
func (g *Generator) afterGenerate(ctx context.Context, session *models.ExportSession) {
	if g.publisher != nil {
		evt := ExportGeneratedEvent{
			SessionID:    session.ID,
			RowCount:     len(session.Rows),
			WarningCount: len(session.Warnings),
			ExpiresAt:    session.ExpiresAt,
		}
		if err := g.publisher.PublishExportGenerated(ctx, evt); err != nil {
			g.logger.Warn("Failed to publish export event", zap.String("session_id", session.ID), zap.Error(err))
		}
	}

	if g.metrics != nil && g.metrics.IsEnabled() {
		if err := g.metrics.RecordCount(ctx, awspkg.MetricExportSessionsGenerated, nil); err != nil {
			g.logger.Debug("Failed to record metric", zap.String("metric", awspkg.MetricExportSessionsGenerated), zap.Error(err))
		}
		if err := g.metrics.RecordValue(ctx, awspkg.MetricExportRowsGenerated, float64(len(session.Rows)), nil); err != nil {
			g.logger.Debug("Failed to record metric", zap.String("metric", awspkg.MetricExportRowsGenerated), zap.Error(err))
		}
		if len(session.Warnings) > 0 {
			if err := g.metrics.RecordValue(ctx, awspkg.MetricExportWarnings, float64(len(session.Warnings)), nil); err != nil {
				g.logger.Debug("Failed to record metric", zap.String("metric", awspkg.MetricExportWarnings), zap.Error(err))
			}
		}
	}
}
