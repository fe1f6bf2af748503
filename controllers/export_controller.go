package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "variant-export-service/common/errors"
	"variant-export-service/models"

	"github.com/gin-gonic/gin"
)

// ExportController serves the scan, generate, preview and download steps.
type ExportController struct {
	scanner   ScannerAPI
	generator GeneratorAPI
	sessions  SessionAPI
	exporter  ExporterAPI
	settings  SettingsAPI
	validator *RequestValidator
}

func NewExportController(scanner ScannerAPI, generator GeneratorAPI, sessions SessionAPI, exporter ExporterAPI, settings SettingsAPI) *ExportController {
	return &ExportController{
		scanner:   scanner,
		generator: generator,
		sessions:  sessions,
		exporter:  exporter,
		settings:  settings,
		validator: NewRequestValidator(),
	}
}

// bindJSON treats an empty body as the zero request.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Scan handles POST /scan
func (ec *ExportController) Scan(c *gin.Context) {
	var req ScanRequest
	if err := bindJSON(c, &req); err != nil {
		apperrors.Respond(c, apperrors.BadRequest("Invalid request body", err))
		return
	}
	if err := ec.validator.Struct(req); err != nil {
		apperrors.Respond(c, apperrors.BadRequest("Too many product ids", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	settings, err := ec.settings.Get(ctx)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	result, err := ec.scanner.Scan(ctx, positiveIDs(req.ProductIDs), settings)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Generate handles POST /generate
func (ec *ExportController) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := bindJSON(c, &req); err != nil {
		apperrors.Respond(c, apperrors.BadRequest("Invalid request body", err))
		return
	}
	if err := ec.validator.Struct(req); err != nil {
		apperrors.Respond(c, apperrors.BadRequest("Invalid selection", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	settings, err := ec.settings.Get(ctx)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	selection := models.AttributeSelection{
		Types:  cleanValues(req.Types),
		Colors: cleanValues(req.Colors),
		Sizes:  cleanValues(req.Sizes),
	}
	result, err := ec.generator.Generate(ctx, positiveIDs(req.ProductIDs), selection, settings)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Session handles GET /session
func (ec *ExportController) Session(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		apperrors.Respond(c, apperrors.BadRequest("session_id is required", nil))
		return
	}
	page, perPage, err := ec.validator.ParsePagination(c, DefaultSessionPerPage, MaxSessionPerPage)
	if err != nil {
		apperrors.Respond(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	result, err := ec.sessions.Page(ctx, sessionID, page, perPage)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export handles GET /export
func (ec *ExportController) Export(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		apperrors.Respond(c, apperrors.BadRequest("session_id is required", nil))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	data, filename, err := ec.exporter.Export(ctx, sessionID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
