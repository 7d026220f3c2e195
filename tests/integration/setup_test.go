package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"merkliste/internal/handlers"
	"merkliste/internal/logger"
	"merkliste/internal/middleware"
	"merkliste/internal/models"
	"merkliste/internal/services"
	"merkliste/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Project{},
		&models.Checklist{},
		&models.Category{},
		&models.Todo{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	projectService := services.NewProjectService(db)
	checklistService := services.NewChecklistService(db)
	categoryService := services.NewCategoryService(db)
	todoService := services.NewTodoService(db)
	treeService := services.NewTreeService(db)

	// Handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	todoHandler := handlers.NewTodoHandler(todoService)
	treeHandler := handlers.NewTreeHandler(treeService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	projects := v1.Group("/projects")
	projects.GET("", projectHandler.GetAllProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.GET("/:id/tree", treeHandler.GetChecklistTree)
	projects.PUT("/:id/tree", treeHandler.SaveChecklistTree)
	projects.GET("/:id/checklist", treeHandler.GetFlatChecklist)
	projects.PUT("/:id/checklist", treeHandler.SaveFlatChecklist)

	checklists := v1.Group("/checklists")
	checklists.POST("", checklistHandler.CreateChecklist)
	checklists.GET("/:id", checklistHandler.GetChecklistByID)
	checklists.PUT("/:id", checklistHandler.UpdateChecklist)
	checklists.DELETE("/:id", checklistHandler.DeleteChecklist)
	checklists.POST("/:id/categories", categoryHandler.CreateCategory)
	checklists.GET("/:id/categories", categoryHandler.GetChecklistCategories)
	checklists.POST("/:id/todos", todoHandler.CreateTodo)
	checklists.GET("/:id/todos", todoHandler.GetChecklistTodos)

	categories := v1.Group("/categories")
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.GET("/:id/todos", todoHandler.GetCategoryTodos)

	todos := v1.Group("/todos")
	todos.GET("/:id", todoHandler.GetTodoByID)
	todos.PUT("/:id", todoHandler.UpdateTodo)
	todos.POST("/:id/toggle", todoHandler.ToggleTodo)
	todos.DELETE("/:id", todoHandler.DeleteTodo)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the machine-readable code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	body, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error body, got: %s", rec.Body.String())
	}
	code, _ := body["code"].(string)
	return code
}

// createProject creates a project through the API and returns its ID.
func (app *testApp) createProject(t *testing.T, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/projects", fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	project := result["project"].(map[string]interface{})
	return project["id"].(string)
}

// createChecklist creates a checklist for a project and returns its ID.
func (app *testApp) createChecklist(t *testing.T, projectID, title string) string {
	t.Helper()
	body := fmt.Sprintf(`{"project_id":%q,"title":%q}`, projectID, title)
	rec := app.request("POST", "/api/v1/checklists", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create checklist failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	checklist := result["checklist"].(map[string]interface{})
	return checklist["id"].(string)
}
