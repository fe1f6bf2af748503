package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapping(t *testing.T) {
	cause := stderrors.New("redis: nil")
	err := fmt.Errorf("page: %w", NotFound("session not found or expired", cause))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "session not found or expired: redis: nil", appErr.Error())

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"app error", BadRequest("Invalid request body", nil), http.StatusBadRequest, `{"error":"Invalid request body"}`},
		{"unavailable", Unavailable("Catalog unavailable", stderrors.New("x")), http.StatusServiceUnavailable, `{"error":"Catalog unavailable"}`},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			Respond(c, tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestErrorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(NotFound("missing", nil))
	})
	r.GET("/ok", func(c *gin.Context) {
		_ = c.Error(stderrors.New("ignored"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"missing"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
