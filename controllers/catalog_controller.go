package controllers

import (
	"context"
	"net/http"
	"strings"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/services"

	"github.com/gin-gonic/gin"
)

const maxSearchLength = 200

// CatalogController serves the product picker.
type CatalogController struct {
	catalog   CatalogAPI
	validator *RequestValidator
}

func NewCatalogController(catalog CatalogAPI) *CatalogController {
	return &CatalogController{catalog: catalog, validator: NewRequestValidator()}
}

// GetProducts handles GET /products
func (cc *CatalogController) GetProducts(c *gin.Context) {
	page, perPage, err := cc.validator.ParsePagination(c, DefaultProductsPerPage, MaxProductsPerPage)
	if err != nil {
		apperrors.Respond(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	search := strings.TrimSpace(c.Query("search"))
	if len(search) > maxSearchLength {
		apperrors.Respond(c, apperrors.BadRequest("search term too long", nil))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	result, err := cc.catalog.ListProducts(ctx, services.ListProductsParams{
		Page:    page,
		PerPage: perPage,
		Search:  search,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
