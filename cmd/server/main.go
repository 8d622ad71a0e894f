package main

import (
	"log"
	"net/http"
	"os"

	"github.com/cardtrack-dev/cardtrack/internal/auth"
	"github.com/cardtrack-dev/cardtrack/internal/config"
	"github.com/cardtrack-dev/cardtrack/internal/database"
	"github.com/cardtrack-dev/cardtrack/internal/handlers"
	"github.com/cardtrack-dev/cardtrack/internal/middleware"
	"github.com/cardtrack-dev/cardtrack/internal/repository"
	"github.com/cardtrack-dev/cardtrack/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func init() {
	// Load .env in development; deployed environments set real variables
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize token signing
	if err := auth.Init(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize JWT signing: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	cardRepo := repository.NewCardRepository(database.GetDB())
	commentRepo := repository.NewCommentRepository(database.GetDB())

	authzService := services.NewAuthzService(userRepo)
	authService := services.NewAuthService(userRepo)
	cardService := services.NewCardService(cardRepo, authzService)
	commentService := services.NewCommentService(commentRepo, cardRepo, authzService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, authzService)
	cardHandler := handlers.NewCardHandler(cardService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Card Tracker API is running",
		})
	})

	// Auth routes (public)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// User routes
	r.DELETE("/users/:id", middleware.RequireAuth(), authHandler.DeleteUser)

	// Card routes: reads are public, mutations require a token
	cards := r.Group("/cards")
	{
		cards.GET("", cardHandler.ListCards)
		cards.GET("/:id", cardHandler.GetCard)
		cards.POST("", middleware.RequireAuth(), cardHandler.CreateCard)
		cards.PUT("/:id", middleware.RequireAuth(), cardHandler.UpdateCard)
		cards.PATCH("/:id", middleware.RequireAuth(), cardHandler.UpdateCard)
		cards.DELETE("/:id", middleware.RequireAuth(), cardHandler.DeleteCard)

		// Comment routes, nested under their parent card
		cards.POST("/:id/comments", middleware.RequireAuth(), commentHandler.CreateComment)
		cards.PUT("/:id/comments/:comment_id", middleware.RequireAuth(), commentHandler.UpdateComment)
		cards.PATCH("/:id/comments/:comment_id", middleware.RequireAuth(), commentHandler.UpdateComment)
		cards.DELETE("/:id/comments/:comment_id", middleware.RequireAuth(), commentHandler.DeleteComment)
	}

	// Start server behind the CORS handler
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
