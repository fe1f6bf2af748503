package routes

import (
	"net/http"

	"variant-export-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the export API under /api/v1 plus the health probe.
func RegisterRoutes(r *gin.Engine, serviceName string, catalog *controllers.CatalogController, export *controllers.ExportController, settings *controllers.SettingsController) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/products", catalog.GetProducts)

		api.POST("/scan", export.Scan)
		api.POST("/generate", export.Generate)
		api.GET("/session", export.Session)
		api.GET("/export", export.Export)

		api.GET("/settings", settings.GetSettings)
		api.POST("/settings", settings.SaveSettings)
	}
}
