// main.go - The entry point and router setup.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bosocmputer/document_classifier/configs"
	"github.com/bosocmputer/document_classifier/internal/ai"
	"github.com/bosocmputer/document_classifier/internal/api"
	"github.com/bosocmputer/document_classifier/internal/classifier"
	"github.com/bosocmputer/document_classifier/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

func main() {
	// Step 1: Load configuration from environment variables
	configs.LoadConfig()

	// Step 1.5: Set production mode
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Step 2: Create the model provider once at startup and wire the pipeline
	provider, err := ai.CreateClassifierProvider()
	if err != nil {
		log.Fatalf("Failed to create classifier provider: %v", err)
	}
	log.Printf("Using AI provider: %s", provider.GetProviderName())

	handler := api.NewHandler(classifier.New(provider))

	// Step 3: Initialize the Gin router
	router := gin.Default()

	// Add CORS middleware - configure allowed origins for production
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", configs.ALLOWED_ORIGINS)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Request-rate limiting is a hosting-layer concern, so it lives here as
	// middleware rather than inside the pipeline
	limiter := ratelimit.NewRateLimiter(configs.RATE_LIMIT_PER_MINUTE)
	rateLimited := func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests. Please wait a moment and try again.",
			})
			return
		}
		c.Next()
	}

	// Root endpoint for SSL verification
	router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "ok",
			"service":  "document-classifier",
			"provider": provider.GetProviderName(),
			"version":  "1.0.0",
		})
	})

	// Step 4: Define the API routes
	router.POST("/api/v1/classify-document", rateLimited, handler.ClassifyDocument)

	// Step 5: Setup HTTP server with timeouts
	srv := &http.Server{
		Addr:           ":" + configs.PORT,
		Handler:        router,
		ReadTimeout:    30 * time.Second, // Allow time for the 4.5MB upload cap
		WriteTimeout:   60 * time.Second, // Two 6s invocation budgets plus extraction
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on :%s", configs.PORT)
		log.Println("API Endpoints:")
		log.Println("  POST /api/v1/classify-document")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
