package controllers

import (
	"context"
	"net/http"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/services"

	"github.com/gin-gonic/gin"
)

// SettingsController exposes the export settings.
type SettingsController struct {
	settings SettingsAPI
}

func NewSettingsController(settings SettingsAPI) *SettingsController {
	return &SettingsController{settings: settings}
}

// GetSettings handles GET /settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	s, err := sc.settings.Get(ctx)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// SaveSettings handles POST /settings
func (sc *SettingsController) SaveSettings(c *gin.Context) {
	var upd services.SettingsUpdate
	if err := bindJSON(c, &upd); err != nil {
		apperrors.Respond(c, apperrors.BadRequest("Invalid request body", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	s, err := sc.settings.Update(ctx, upd)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": s})
}
