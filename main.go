package main

import (
	"context"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"track-catalog/config"
	"track-catalog/database"
	"track-catalog/handlers"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize catalog service
	catalogService, err := database.NewCatalogService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize catalog service: %v", err)
	}
	defer catalogService.Close()

	if err := database.InitSchema(catalogService.DB()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	if cfg.SeedCatalog {
		if err := catalogService.SeedCatalog(context.Background()); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	r := gin.Default()

	// CORS middleware for Gin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.GET("/health", catalogHandler.HealthHandler)
	r.GET("/brands", catalogHandler.BrandsHandler)
	r.GET("/machines/search", catalogHandler.SearchMachinesHandler)
	r.GET("/tracks/search", catalogHandler.SearchTrackSizesHandler)
	r.GET("/parts/search", catalogHandler.SearchPartNumbersHandler)
	r.GET("/machines/:make/:model/tracks", catalogHandler.MachineTracksHandler)

	log.Infof("Starting track catalog service on %s:%s", cfg.Host, cfg.Port)
	r.Run(cfg.Host + ":" + cfg.Port)
}
