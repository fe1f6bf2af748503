package services

import (
	"context"
	"fmt"

	"variant-export-service/models"
	"variant-export-service/repository"

	"go.uber.org/zap"
)

// Scanner collects the distinct type, color and size values of the variants
// of a set of variable products.
type Scanner struct {
	catalog repository.CatalogRepo
	logger  *zap.Logger
}

func NewScanner(catalog repository.CatalogRepo, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.L()
	}
	return &Scanner{catalog: catalog, logger: logger}
}

func (s *Scanner) Scan(ctx context.Context, productIDs []int64, settings models.Settings) (*ScanResult, error) {
	types, colors, sizes := valueSet{}, valueSet{}, valueSet{}
	warnings := []string{}

	for _, pid := range productIDs {
		p, err := resolveProduct(ctx, s.catalog, pid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		if !p.IsVariable() {
			warnings = append(warnings, fmt.Sprintf("product #%d is not a variable product (skipped from scan)", pid))
			continue
		}

		for _, vid := range p.VariationIDs {
			v, err := resolveVariant(ctx, s.catalog, vid)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			types.add(lookupAttribute(v, settings.AttrType))
			colors.add(lookupAttribute(v, settings.AttrColor))
			sizes.add(lookupAttribute(v, settings.AttrSize))
		}
	}

	s.logger.Debug("Attribute scan finished",
		zap.Int("products", len(productIDs)),
		zap.Int("types", len(types)),
		zap.Int("colors", len(colors)),
		zap.Int("sizes", len(sizes)),
	)

	return &ScanResult{
		Types:        types.sorted(),
		Colors:       colors.sorted(),
		Sizes:        sizes.sorted(),
		Warnings:     warnings,
		SettingsUsed: axisKeys(settings),
	}, nil
}
