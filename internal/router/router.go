package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yucheng/cardvault-backend/config"
	"github.com/yucheng/cardvault-backend/internal/app/controller"
	"github.com/yucheng/cardvault-backend/internal/middleware"
	"github.com/yucheng/cardvault-backend/internal/web"
	webembed "github.com/yucheng/cardvault-backend/web"
)

type Router struct {
	definitionController *controller.DefinitionController
	inventoryController  *controller.InventoryController
	dashboardController  *controller.DashboardController
	filterController     *controller.FilterController
	uploadController     *controller.UploadController
	webServer            *web.Server
	config               *config.Config
}

func NewRouter(
	definitionController *controller.DefinitionController,
	inventoryController *controller.InventoryController,
	dashboardController *controller.DashboardController,
	filterController *controller.FilterController,
	uploadController *controller.UploadController,
	webServer *web.Server,
	cfg *config.Config,
) *Router {
	return &Router{
		definitionController: definitionController,
		inventoryController:  inventoryController,
		dashboardController:  dashboardController,
		filterController:     filterController,
		uploadController:     uploadController,
		webServer:            webServer,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "CardVault API is running",
		})
	})

	// Embedded assets for the server-rendered pages
	router.StaticFS("/static", http.FS(webembed.StaticFS()))

	// Server-rendered pages
	router.GET("/", r.webServer.Dashboard)
	router.GET("/cards/:id", r.webServer.CardDetail)

	webForms := router.Group("/web")
	{
		webForms.POST("/definitions", r.webServer.CreateDefinitionForm)
		webForms.POST("/definitions/:id", r.webServer.UpdateDefinitionForm)
		webForms.POST("/definitions/:id/archive", r.webServer.ArchiveDefinitionForm)
		webForms.POST("/inventory", r.webServer.CreateItemForm)
		webForms.POST("/inventory/:id", r.webServer.UpdateItemForm)
		webForms.POST("/inventory/:id/archive", r.webServer.ArchiveItemForm)
	}

	v1 := router.Group("/api/v1")
	{
		definitions := v1.Group("/definitions")
		{
			definitions.GET("", r.definitionController.ListDefinitions)
			definitions.GET("/:id", r.definitionController.GetDefinitionByID)
			definitions.POST("", r.definitionController.CreateDefinition)
			definitions.PUT("/:id", r.definitionController.UpdateDefinition)
			definitions.POST("/:id/archive", r.definitionController.ArchiveDefinition)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("", r.inventoryController.ListItems)
			inventory.GET("/export", r.inventoryController.ExportInventory)
			inventory.GET("/:id", r.inventoryController.GetItemByID)
			inventory.POST("", r.inventoryController.CreateItem)
			inventory.PUT("/:id", r.inventoryController.UpdateItem)
			inventory.POST("/:id/archive", r.inventoryController.ArchiveItem)
		}

		v1.GET("/dashboard", r.dashboardController.GetOverview)
		v1.GET("/filter-options", r.filterController.GetFilterOptions)

		upload := v1.Group("/upload")
		{
			upload.POST("/image", r.uploadController.UploadImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
