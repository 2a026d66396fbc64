package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "clinic-directory/docs"
	"clinic-directory/internal/database"
	"clinic-directory/internal/handlers"
	"clinic-directory/internal/ratelimit"
)

// Stale rate-limit counters are kept for a day past their window so
// recent decisions stay inspectable, then purged.
const rateLimitRetention = 24 * time.Hour

// @title Clinic Directory API
// @version 1.0
// @description Directory and curation API for dental clinic listings.
// @BasePath /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	database.ConnectDatabase()

	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		limiter := ratelimit.New(database.GetDB())
		purged, err := limiter.PurgeStale(context.Background(), time.Now().Add(-rateLimitRetention))
		if err != nil {
			log.Printf("Failed to purge stale rate limit counters: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d stale rate limit counters", purged)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule rate limit purge: %v", err)
	}
	c.Start()
	defer c.Stop()

	router := gin.Default()

	v1 := router.Group("/api/v1")
	{
		clinicRoutes := v1.Group("/clinics")
		{
			clinicRoutes.GET("/", handlers.ListClinics)
			clinicRoutes.GET("/:slug", handlers.GetClinic)
		}

		adminRoutes := v1.Group("/admin")
		{
			adminRoutes.POST("/import-clinics", handlers.RateLimit("admin_import", 10, 60), handlers.ImportClinics)
			adminRoutes.POST("/curation/bulk-update", handlers.BulkUpdateClinics)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
