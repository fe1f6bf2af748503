package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Paging limits per endpoint.
const (
	DefaultProductsPerPage = 25
	MaxProductsPerPage     = 100
	DefaultSessionPerPage  = 50
	MaxSessionPerPage      = 200
	MaxPageNumber          = 1000000
)

// ScanRequest is the body of POST /scan
type ScanRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"max=1000"`
}

// GenerateRequest is the body of POST /generate
type GenerateRequest struct {
	ProductIDs []int64  `json:"product_ids" validate:"max=1000"`
	Types      []string `json:"termektipus" validate:"max=500,dive,max=200"`
	Colors     []string `json:"szin" validate:"max=500,dive,max=200"`
	Sizes      []string `json:"meret" validate:"max=500,dive,max=200"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

func (rv *RequestValidator) Struct(v interface{}) error {
	return rv.validate.Struct(v)
}

// ParsePagination reads page and per_page. Numbers outside the allowed range
// are clamped; anything non-numeric is rejected.
func (rv *RequestValidator) ParsePagination(c *gin.Context, defaultPerPage, maxPerPage int) (int, int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	if err != nil {
		return 0, 0, errors.New("invalid page number")
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	perPage, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage))))
	if err != nil {
		return 0, 0, errors.New("invalid page size")
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, nil
}

// positiveIDs drops zero and negative ids, keeping order.
func positiveIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}

// cleanValues trims selection values and drops blanks.
func cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
