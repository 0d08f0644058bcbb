package routes

import (
	"publication-metrics-api/controllers"
	"publication-metrics-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires the services and registers every endpoint. Paths are the
// ones the external dashboard already consumes, so no version prefix is
// imposed on them.
func SetupRoutes(router *gin.Engine, db *gorm.DB) {
	catalog := services.NewCatalogService(db)
	kpis := services.NewKPIService(db)
	extraction := services.NewExtractionService(catalog)

	journalCtl := controllers.NewJournalController(catalog)
	publicationCtl := controllers.NewPublicationController(catalog)
	kpiCtl := controllers.NewKPIController(kpis)
	extractionCtl := controllers.NewExtractionController(extraction)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Publication Metrics API is running",
		})
	})

	// Journals catalog
	journals := router.Group("/journals")
	{
		journals.GET("", journalCtl.List)
		journals.GET("/:id", journalCtl.Get)
		journals.POST("", journalCtl.Create)
		journals.PUT("/:id", journalCtl.Update)
		journals.DELETE("/:id", journalCtl.Delete)
		journals.POST("/:id/image", journalCtl.UploadImage)
	}

	// Publications catalog
	publications := router.Group("/publications")
	{
		publications.GET("/:id", publicationCtl.Get)
		publications.POST("", publicationCtl.Create)
		publications.PUT("/:id", publicationCtl.Update)
		publications.DELETE("/:id", publicationCtl.Delete)
	}
	router.GET("/publications_list", publicationCtl.ListWithJournal)

	// KPI report for the dashboard
	router.GET("/kpis", kpiCtl.GetKPIs)

	// Citation text extraction
	router.POST("/parse_publication", extractionCtl.ParsePublication)
}
