package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"collections-backend/internal/shared/middleware"
	"collections-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCollectionRoutes(v1, c)
		setupStoryRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupImageRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
	}
}

// Reads are public; every mutation requires the editor token.
func setupCollectionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	collections := v1.Group("/collections")
	{
		collections.GET("", c.CollectionHandler.GetAll)
		collections.GET("/:id", c.CollectionHandler.GetByID)
		collections.GET("/slug/:slug", c.CollectionHandler.GetBySlug)
		collections.GET("/:id/stories", c.StoryHandler.GetByCollection)

		protected := collections.Group("", middleware.AuthMiddleware(c.JWTManager))
		{
			protected.POST("", c.CollectionHandler.Create)
			protected.PUT("/:id", c.CollectionHandler.Update)
			protected.POST("/:id/publish", c.CollectionHandler.Publish)
			protected.POST("/:id/unpublish", c.CollectionHandler.Unpublish)
			protected.POST("/:id/archive", c.CollectionHandler.Archive)
			protected.DELETE("/:id", c.CollectionHandler.Delete)
			protected.POST("/:id/stories", c.StoryHandler.Create)
		}
	}
}

func setupStoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	stories := v1.Group("/stories")
	{
		stories.GET("/:id", c.StoryHandler.GetByID)

		protected := stories.Group("", middleware.AuthMiddleware(c.JWTManager))
		{
			protected.PUT("/:id", c.StoryHandler.Update)
			protected.DELETE("/:id", c.StoryHandler.Delete)
		}
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.GET("/slug/:slug", c.AuthorHandler.GetBySlug)

		protected := authors.Group("", middleware.AuthMiddleware(c.JWTManager))
		{
			protected.POST("", c.AuthorHandler.Create)
			protected.PUT("/:id", c.AuthorHandler.Update)
			protected.DELETE("/:id", c.AuthorHandler.Delete)
		}
	}
}

func setupImageRoutes(v1 *gin.RouterGroup, c *container.Container) {
	images := v1.Group("/images")
	{
		images.GET("", c.ImageHandler.GetByEntity)

		protected := images.Group("", middleware.AuthMiddleware(c.JWTManager))
		{
			protected.POST("", c.ImageHandler.Upload)
			protected.DELETE("/:id", c.ImageHandler.Delete)
		}
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
