package main

import (
	"log"

	"github.com/contributor-dev/contributor-api/internal/config"
	"github.com/contributor-dev/contributor-api/internal/database"
	"github.com/contributor-dev/contributor-api/internal/handlers"
	"github.com/contributor-dev/contributor-api/internal/middleware"
	"github.com/contributor-dev/contributor-api/internal/repository"
	"github.com/contributor-dev/contributor-api/internal/services"
	"github.com/contributor-dev/contributor-api/internal/token"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Token codec
	codec := token.NewCodec(cfg.SecretKey)

	// Services
	authService := services.NewAuthService(userRepo)
	githubService := services.NewGitHubService(cfg, userRepo)
	roomService := services.NewRoomService(roomRepo)
	taskService := services.NewTaskService(taskRepo, roomRepo, githubService)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, githubService, codec, cfg.AccessTokenTTL)
	userHandler := handlers.NewUserHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService)
	taskHandler := handlers.NewTaskHandler(taskService, roomService, aiService)

	requireAuth := middleware.RequireAuth(codec, userRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Contributor API is running",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.GET("/github", authHandler.GithubLogin)
			auth.GET("/github/callback", authHandler.GithubCallback)
		}

		// User routes
		users := api.Group("/users")
		{
			users.GET("/me", requireAuth, userHandler.GetMe)
			users.PUT("/me", requireAuth, userHandler.UpdateMe)
			users.GET("/:username", userHandler.GetByUsername)
		}

		// Room routes (protected)
		rooms := api.Group("/rooms")
		rooms.Use(requireAuth)
		{
			rooms.GET("", roomHandler.ListRooms)
			rooms.POST("", roomHandler.CreateRoom)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.PUT("/:id", roomHandler.UpdateRoom)
			rooms.DELETE("/:id", roomHandler.DeleteRoom)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/start", taskHandler.StartTask)
			tasks.POST("/:id/join", taskHandler.JoinTask)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
