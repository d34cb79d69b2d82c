package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"enrichly/internal/handler"
	"enrichly/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	enrichH *handler.EnrichHandler,
	bulkH *handler.BulkEnrichHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health check
	r.GET("/health", healthH.Health)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/enrich", enrichH.Enrich)
	v1.POST("/bulk-enrich", bulkH.BulkEnrich)

	return r
}
