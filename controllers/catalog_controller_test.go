package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "variant-export-service/common/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(catalog *fakeCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", NewCatalogController(catalog).GetProducts)
	return router
}

func TestGetProducts_Params(t *testing.T) {
	catalog := &fakeCatalog{}
	router := newCatalogRouter(catalog)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?page=2&per_page=500&search=%20tee%20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, catalog.lastParams.Page)
	assert.Equal(t, MaxProductsPerPage, catalog.lastParams.PerPage)
	assert.Equal(t, "tee", catalog.lastParams.Search)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
	assert.Len(t, body["items"], 1)
}

func TestGetProducts_Defaults(t *testing.T) {
	catalog := &fakeCatalog{}
	router := newCatalogRouter(catalog)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, catalog.lastParams.Page)
	assert.Equal(t, DefaultProductsPerPage, catalog.lastParams.PerPage)
}

func TestGetProducts_BadInput(t *testing.T) {
	catalog := &fakeCatalog{}
	router := newCatalogRouter(catalog)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?per_page=ten", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?search="+strings.Repeat("a", 201), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, catalog.calls)
}

func TestGetProducts_Unavailable(t *testing.T) {
	catalog := &fakeCatalog{err: apperrors.Unavailable("Catalog unavailable", errors.New("throttled"))}
	router := newCatalogRouter(catalog)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
