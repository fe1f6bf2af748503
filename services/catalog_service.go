package services

import (
	"context"
	"sort"
	"strings"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/models"
	"variant-export-service/repository"
)

// Listing limits for the product picker.
const (
	DefaultProductsPerPage = 25
	MaxProductsPerPage     = 100
)

var listableTypes = map[string]bool{
	models.ProductTypeVariable: true,
	models.ProductTypeSimple:   true,
}

var listableStatuses = map[string]bool{
	models.ProductStatusPublish: true,
	models.ProductStatusPrivate: true,
	models.ProductStatusDraft:   true,
}

// CatalogService backs the product picker.
type CatalogService struct {
	catalog repository.CatalogRepo
	images  ImageURLResolver
}

func NewCatalogService(catalog repository.CatalogRepo, images ImageURLResolver) *CatalogService {
	return &CatalogService{catalog: catalog, images: images}
}

// ListProducts returns variable and simple products, newest first, optionally
// filtered by a case-insensitive substring of name or SKU.
func (s *CatalogService) ListProducts(ctx context.Context, params ListProductsParams) (*ProductPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = DefaultProductsPerPage
	}
	if perPage > MaxProductsPerPage {
		perPage = MaxProductsPerPage
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("Catalog unavailable", err)
	}

	search := strings.ToLower(strings.TrimSpace(params.Search))
	matched := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if !listableTypes[p.Type] || !listableStatuses[p.Status] {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	items := make([]models.ProductSummary, 0, end-start)
	for _, p := range matched[start:end] {
		var image *string
		if s.images != nil && p.ImageKey != "" {
			image = s.images.Resolve(ctx, p.ImageKey)
		}
		items = append(items, models.ProductSummary{
			ID:     p.ID,
			Name:   p.Name,
			SKU:    p.SKU,
			Type:   p.Type,
			Image:  image,
			Status: p.Status,
		})
	}

	return &ProductPage{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}
