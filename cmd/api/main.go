package main

import (
	"fmt"
	"net/http"
	"os"

	"merkliste/internal/config"
	"merkliste/internal/database"
	"merkliste/internal/handlers"
	"merkliste/internal/logger"
	"merkliste/internal/middleware"
	"merkliste/internal/services"
	"merkliste/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "merkliste/internal/docs" // Import swagger docs
)

// @title           Merkliste API
// @version         1.0
// @description     Merkliste is a personal project manager: projects carry a checklist of todos, optionally grouped into colored categories with link/price/notes metadata.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	projectService := services.NewProjectService(db)
	checklistService := services.NewChecklistService(db)
	categoryService := services.NewCategoryService(db)
	todoService := services.NewTodoService(db)
	treeService := services.NewTreeService(db)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	todoHandler := handlers.NewTodoHandler(todoService)
	treeHandler := handlers.NewTreeHandler(treeService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Project routes
	projects := v1.Group("/projects")
	projects.GET("", projectHandler.GetAllProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Denormalized checklist views and full-tree saves
	projects.GET("/:id/tree", treeHandler.GetChecklistTree)
	projects.PUT("/:id/tree", treeHandler.SaveChecklistTree)
	projects.GET("/:id/checklist", treeHandler.GetFlatChecklist)
	projects.PUT("/:id/checklist", treeHandler.SaveFlatChecklist)

	// Checklist routes
	checklists := v1.Group("/checklists")
	checklists.POST("", checklistHandler.CreateChecklist)
	checklists.GET("/:id", checklistHandler.GetChecklistByID)
	checklists.PUT("/:id", checklistHandler.UpdateChecklist)
	checklists.DELETE("/:id", checklistHandler.DeleteChecklist)
	checklists.POST("/:id/categories", categoryHandler.CreateCategory)
	checklists.GET("/:id/categories", categoryHandler.GetChecklistCategories)
	checklists.POST("/:id/todos", todoHandler.CreateTodo)
	checklists.GET("/:id/todos", todoHandler.GetChecklistTodos)

	// Category routes
	categories := v1.Group("/categories")
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.GET("/:id/todos", todoHandler.GetCategoryTodos)

	// Todo routes
	todos := v1.Group("/todos")
	todos.GET("/:id", todoHandler.GetTodoByID)
	todos.PUT("/:id", todoHandler.UpdateTodo)
	todos.POST("/:id/toggle", todoHandler.ToggleTodo)
	todos.DELETE("/:id", todoHandler.DeleteTodo)

	log.Infof("Starting Merkliste backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
