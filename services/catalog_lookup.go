package services

import (
	"context"
	"errors"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/models"
	"variant-export-service/repository"
)

// resolveProduct returns (nil, nil) for ids the catalog does not know.
func resolveProduct(ctx context.Context, catalog repository.CatalogRepo, id int64) (*models.Product, error) {
	p, err := catalog.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Unavailable("Catalog unavailable", err)
	}
	return p, nil
}

// resolveVariant returns (nil, nil) for ids that are missing or not variations.
func resolveVariant(ctx context.Context, catalog repository.CatalogRepo, id int64) (*models.Variant, error) {
	v, err := catalog.GetVariant(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Unavailable("Catalog unavailable", err)
	}
	return v, nil
}
