package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"roadside-assist-server/config"
	"roadside-assist-server/database"
	"roadside-assist-server/jobs"
	"roadside-assist-server/middleware"
	"roadside-assist-server/routes"
	ws "roadside-assist-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Roadside Assist Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Realtime hub for chat and status events
	chatHub := ws.NewHub()
	go chatHub.Run()

	// Background job: cancel requests that stayed pending past their TTL
	expirationJob := jobs.NewExpirationJob(database.DB,
		time.Duration(config.AppConfig.Request.PendingTTLHours)*time.Hour)
	expirationJob.Start()
	defer expirationJob.Stop()

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authRoutes := api.Group("/auth")
		routes.RegisterAuthRoutes(authRoutes)

		// Chat routes manage their own auth (WebSocket upgrade uses query token)
		chatRoutes := api.Group("/chat")
		routes.RegisterChatRoutes(chatRoutes, chatHub)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			requestRoutes := protected.Group("/requests")
			routes.RegisterRequestRoutes(requestRoutes)

			quoteRoutes := protected.Group("/quotes")
			routes.RegisterQuoteRoutes(quoteRoutes)

			paymentRoutes := protected.Group("/payments")
			routes.RegisterPaymentRoutes(paymentRoutes)

			productRoutes := protected.Group("/products")
			routes.RegisterProductRoutes(productRoutes)

			notificationRoutes := protected.Group("/notifications")
			routes.RegisterNotificationRoutes(notificationRoutes)
		}
	}

	// Start server
	port := config.AppConfig.Server.Port
	log.Printf("🚀 Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
