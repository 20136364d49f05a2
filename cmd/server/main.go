// @title           Decky Backend API
// @version         1.0.0
// @description     Backend API for the presentation generator. Handles image acquisition (stock search and generative providers), durable asset storage with signed URLs, file uploads, and presentation records.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"decky-backend/docs"
	"decky-backend/internal/config"
	"decky-backend/internal/database"
	"decky-backend/internal/handlers"
	"decky-backend/internal/middleware"
	"decky-backend/internal/providers"
	"decky-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Provider selection happens once here; requests never re-resolve it.
	provider := providers.FromConfig(cfg)
	if provider == nil {
		log.Println("Warning: no image provider configured. Image generation will return the placeholder.")
	} else {
		log.Printf("Image provider: %s", provider.Name())
	}

	// Storage misconfiguration is fatal when storage is requested at all;
	// a fully absent storage config leaves the service in placeholder mode.
	var storageClient *supabase.StorageClient
	if cfg.StorageConfigured() {
		storageClient, err = supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
	} else {
		log.Println("Warning: Supabase storage not configured. Generated images cannot be persisted.")
	}

	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize migrator: %v", err)
		} else {
			defer migrator.Close()
			if err := migrator.Run(); err != nil {
				log.Printf("Warning: Migration failed: %v", err)
			} else {
				log.Println("Migrations completed successfully")
			}
		}

		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize database client: %v", err)
			log.Println("Presentation and asset records will not be available.")
		} else {
			defer dbClient.Close()
		}
	} else {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
	}

	jwksCache := middleware.NewJWKSCache(cfg.ClerkJWKSURL, middleware.DefaultJWKSTTL)

	imagesHandler := handlers.NewImagesHandler(provider, storageClient, dbClient)
	uploadsHandler := handlers.NewUploadsHandler(storageClient)
	presentationsHandler := handlers.NewPresentationsHandler(dbClient)

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health checks (no auth)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/heartbeat", handlers.HeartbeatHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg, jwksCache))

	api.POST("/images/generate", imagesHandler.GenerateImage)
	api.GET("/images", imagesHandler.ListImages)

	api.POST("/files/upload", uploadsHandler.Upload)
	api.DELETE("/files", uploadsHandler.DeleteFile)

	api.POST("/presentations", presentationsHandler.CreatePresentation)
	api.GET("/presentations", presentationsHandler.ListPresentations)
	api.GET("/presentations/:presentation_id", presentationsHandler.GetPresentation)
	api.DELETE("/presentations/:presentation_id", presentationsHandler.DeletePresentation)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
