package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/models"
	"variant-export-service/repository"

	"github.com/go-playground/validator/v10"
)

// SettingsService reads and updates the export settings.
type SettingsService struct {
	repo     repository.SettingsRepo
	validate *validator.Validate
}

func NewSettingsService(repo repository.SettingsRepo) *SettingsService {
	return &SettingsService{repo: repo, validate: validator.New()}
}

// Get returns the defaults merged with whatever has been stored.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, apperrors.Unavailable("Settings store unavailable", err)
	}
	return models.SettingsFromMap(stored), nil
}

// Update changes only the provided fields and returns the effective settings.
func (s *SettingsService) Update(ctx context.Context, upd SettingsUpdate) (models.Settings, error) {
	if err := s.validate.Struct(upd); err != nil {
		return models.Settings{}, apperrors.BadRequest("Invalid settings", err)
	}

	stored, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, apperrors.Unavailable("Settings store unavailable", err)
	}
	if stored == nil {
		stored = map[string]string{}
	}
	defaults := models.DefaultSettings()

	setKey := func(name string, v *string, fallback string) {
		if v == nil {
			return
		}
		key := sanitizeKey(*v)
		if key == "" {
			key = fallback
		}
		stored[name] = key
	}
	setKey("attr_type", upd.AttrType, defaults.AttrType)
	setKey("attr_color", upd.AttrColor, defaults.AttrColor)
	setKey("attr_size", upd.AttrSize, defaults.AttrSize)

	if upd.DescSource != nil {
		src := strings.TrimSpace(*upd.DescSource)
		if src != models.DescSourceShort && src != models.DescSourceLong {
			src = models.DescSourceShort
		}
		stored["desc_source"] = src
	}
	if upd.JoinSep != nil {
		stored["join_sep"] = sanitizeSeparator(*upd.JoinSep)
	}

	if err := s.repo.Save(ctx, stored); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return models.SettingsFromMap(stored), nil
}

// sanitizeKey lowercases s and keeps only [a-z0-9_-].
func sanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeSeparator removes markup and line breaks but keeps surrounding spaces.
func sanitizeSeparator(s string) string {
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.NewReplacer("\r", "", "\n", "", "\t", "").Replace(s)
}
