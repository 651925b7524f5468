package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/reinieltalplacido/speedial/pkg/speedial/config"
	"github.com/reinieltalplacido/speedial/pkg/speedial/links"
	"github.com/reinieltalplacido/speedial/pkg/speedial/logging"
	"github.com/reinieltalplacido/speedial/pkg/speedial/profile"
	"github.com/reinieltalplacido/speedial/pkg/speedial/store"
)

// @title Speedial API
// @version 1.0
// @description A personal speed-dial bookmark manager with shareable per-username profiles.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.LogLevel(cfg.LogLevel))

	// One store instance per process; it owns the failover state.
	st := store.New(cfg.DataPath, logger)
	service := links.NewService(st)

	// Set up Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "speedial",
			})
		})

		linksHandler := links.NewHandler(service)
		linksHandler.RegisterRoutes(api)
	}

	// Shared profile routes (registered last, on the root router)
	profileHandler := profile.NewHandler(service)
	profileHandler.RegisterRoutes(r)

	logger.Info(context.Background(), "starting server",
		"port", cfg.Port, "data_path", cfg.DataPath)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
