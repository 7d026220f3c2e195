package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merkliste/internal/services"
)

// TodoHandler handles todo-related requests.
type TodoHandler struct {
	todoService services.TodoServicer
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService services.TodoServicer) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest represents the request payload for creating a todo.
// The caller decides whether the item is plain text or text with
// price/link metadata; nothing is inferred from the payload shape.
type CreateTodoRequest struct {
	Text       string  `json:"text" binding:"required"`
	Price      *string `json:"price"`
	Link       *string `json:"link"`
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
}

// UpdateTodoRequest represents a partial todo update. Absent fields
// stay unchanged; empty strings clear the nullable fields, and an empty
// category_id moves the todo to the uncategorized bucket.
type UpdateTodoRequest struct {
	Text       *string `json:"text"`
	Completed  *bool   `json:"completed"`
	Link       *string `json:"link"`
	Price      *string `json:"price"`
	Notes      *string `json:"notes"`
	CategoryID *string `json:"category_id"`
	Position   *int    `json:"position"`
}

// CreateTodo handles the creation of a new todo
// @Summary     Create a todo
// @Description Create a todo at the end of its container (a category or the uncategorized bucket)
// @Tags        todos
// @Accept      json
// @Produce     json
// @Param       id path string true "Checklist ID"
// @Param       request body CreateTodoRequest true "Todo details"
// @Success     201 {object} models.Todo "Todo created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Checklist or category not found"
// @Router      /checklists/{id}/todos [post]
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	checklistID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateTodoInput{Text: req.Text, Price: req.Price, Link: req.Link}
	todo, err := h.todoService.CreateTodo(checklistID, input, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"todo": todo})
}

// GetChecklistTodos handles the retrieval of all todos of a checklist
// @Summary     Get checklist todos
// @Description Get all todos of a checklist in display order
// @Tags        todos
// @Produce     json
// @Param       id path string true "Checklist ID"
// @Success     200 {array} models.Todo "List of todos"
// @Failure     400 {object} ErrorResponse "Invalid checklist ID"
// @Router      /checklists/{id}/todos [get]
func (h *TodoHandler) GetChecklistTodos(c *gin.Context) {
	checklistID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	todos, err := h.todoService.GetTodosByChecklist(checklistID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// GetCategoryTodos handles the retrieval of a category's todos
// @Summary     Get category todos
// @Description Get a category's todos in display order
// @Tags        todos
// @Produce     json
// @Param       id path string true "Category ID"
// @Success     200 {array} models.Todo "List of todos"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Router      /categories/{id}/todos [get]
func (h *TodoHandler) GetCategoryTodos(c *gin.Context) {
	categoryID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	todos, err := h.todoService.GetTodosByCategory(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// GetTodoByID handles the retrieval of a specific todo
// @Summary     Get todo by ID
// @Description Get a specific todo by ID
// @Tags        todos
// @Produce     json
// @Param       id path string true "Todo ID"
// @Success     200 {object} models.Todo "Todo details"
// @Failure     400 {object} ErrorResponse "Invalid todo ID"
// @Failure     404 {object} ErrorResponse "Todo not found"
// @Router      /todos/{id} [get]
func (h *TodoHandler) GetTodoByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	todo, err := h.todoService.GetTodoByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// UpdateTodo handles a partial todo update
// @Summary     Update todo
// @Description Update todo fields; absent fields stay unchanged, empty strings clear nullable fields, category_id moves the todo
// @Tags        todos
// @Accept      json
// @Produce     json
// @Param       id path string true "Todo ID"
// @Param       request body UpdateTodoRequest true "Updated todo fields"
// @Success     200 {object} models.Todo "Updated todo"
// @Failure     400 {object} ErrorResponse "Invalid input or todo ID"
// @Failure     404 {object} ErrorResponse "Todo not found"
// @Router      /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoService.UpdateTodo(id, services.TodoUpdates{
		Text:       req.Text,
		Completed:  req.Completed,
		Link:       req.Link,
		Price:      req.Price,
		Notes:      req.Notes,
		CategoryID: req.CategoryID,
		Position:   req.Position,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// ToggleTodo handles flipping a todo's completed flag
// @Summary     Toggle todo
// @Description Flip a todo's completed flag
// @Tags        todos
// @Produce     json
// @Param       id path string true "Todo ID"
// @Success     200 {object} models.Todo "Updated todo"
// @Failure     400 {object} ErrorResponse "Invalid todo ID"
// @Failure     404 {object} ErrorResponse "Todo not found"
// @Router      /todos/{id}/toggle [post]
func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	todo, err := h.todoService.ToggleTodo(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// DeleteTodo handles deleting a todo
// @Summary     Delete todo
// @Description Delete a todo by ID
// @Tags        todos
// @Produce     json
// @Param       id path string true "Todo ID"
// @Success     200 {object} MessageResponse "Todo deleted"
// @Failure     400 {object} ErrorResponse "Invalid todo ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.todoService.DeleteTodo(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Todo deleted successfully"})
}
