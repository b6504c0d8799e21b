package main

import (
	"log"
	"os"

	"conference-review-api/config"
	"conference-review-api/controllers"
	"conference-review-api/middleware"
	"conference-review-api/routes"
	"conference-review-api/services"
	"conference-review-api/thematique"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Load the thematic vocabulary; the built-in set is the fallback.
	vocab := thematique.Default()
	if path := os.Getenv("THEMATIQUES_FILE"); path != "" {
		loaded, err := thematique.LoadFile(path)
		if err != nil {
			log.Fatalf("Failed to load thematiques from %s: %v", path, err)
		}
		vocab = loaded
	}
	log.Printf("Thematic vocabulary loaded: %d codes", len(vocab.Codes()))

	controllers.Setup(config.DB, vocab, services.EmailNotifier{})

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
