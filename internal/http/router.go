package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))

	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	api := router.Group("/api")

	// Breed catalog endpoints
	if cfg.Breeds != nil {
		breedsController := NewBreedsController(cfg.Breeds)
		api.GET("/breeds", breedsController.ListBreeds)
		api.GET("/breeds/:id", breedsController.GetBreed)

		matcherController := NewMatcherController(cfg.Breeds)
		api.GET("/matcher/steps", matcherController.GetSteps)
		api.POST("/matcher", matcherController.Match)

		if cfg.Images != nil {
			imagesController := NewImagesController(cfg.Breeds, cfg.Images, cfg.ThumbnailMaxSize)
			api.GET("/breeds/:id/image", imagesController.GetImage)
		}
	}

	// Sighting log endpoints
	if cfg.Sightings != nil {
		sightingsController := NewSightingsController(cfg.Sightings)
		api.GET("/sightings", sightingsController.ListSightings)
		api.POST("/sightings", sightingsController.CreateSighting)
		api.GET("/stats", sightingsController.GetStats)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.POST("/tasks/prefetch-images", tasksController.PrefetchImages)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}

// corsMiddleware adapts rs/cors to gin. Preflight requests are answered here.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         600,
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
