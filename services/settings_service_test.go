package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/models"
	"variant-export-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type failingSettingsRepo struct{}

func (failingSettingsRepo) Load(ctx context.Context) (map[string]string, error) {
	return nil, errors.New("redis down")
}

func (failingSettingsRepo) Save(ctx context.Context, values map[string]string) error {
	return errors.New("redis down")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository())

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s)
}

func TestSettingsService_UpdatePartial(t *testing.T) {
	repo := repository.NewMemorySettingsRepository()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	s, err := svc.Update(ctx, SettingsUpdate{AttrColor: strPtr("PA_Color!")})
	require.NoError(t, err)
	assert.Equal(t, "pa_color", s.AttrColor)
	assert.Equal(t, "pa_termektipus", s.AttrType)
	assert.Equal(t, " | ", s.JoinSep)

	s, err = svc.Update(ctx, SettingsUpdate{JoinSep: strPtr(" <b>/</b>\n ")})
	require.NoError(t, err)
	assert.Equal(t, " / ", s.JoinSep)
	assert.Equal(t, "pa_color", s.AttrColor, "earlier update kept")

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, " / ", stored["join_sep"])
}

func TestSettingsService_DescSourceFallsBackToShort(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository())
	ctx := context.Background()

	s, err := svc.Update(ctx, SettingsUpdate{DescSource: strPtr("long")})
	require.NoError(t, err)
	assert.Equal(t, models.DescSourceLong, s.DescSource)

	s, err = svc.Update(ctx, SettingsUpdate{DescSource: strPtr("excerpt")})
	require.NoError(t, err)
	assert.Equal(t, models.DescSourceShort, s.DescSource)
}

func TestSettingsService_EmptyKeyRestoresDefault(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository())

	s, err := svc.Update(context.Background(), SettingsUpdate{AttrSize: strPtr("???")})
	require.NoError(t, err)
	assert.Equal(t, "pa_meret", s.AttrSize)
}

func TestSettingsService_ValidationError(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsRepository())

	_, err := svc.Update(context.Background(), SettingsUpdate{JoinSep: strPtr(strings.Repeat("-", 40))})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestSettingsService_StoreFailure(t *testing.T) {
	svc := NewSettingsService(failingSettingsRepo{})

	_, err := svc.Get(context.Background())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "pa_szn-2", sanitizeKey(" PA_Szín-2 "))
	assert.Equal(t, "", sanitizeKey("<>"))
}
