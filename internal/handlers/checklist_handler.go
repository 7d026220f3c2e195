package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merkliste/internal/services"
)

// ChecklistHandler handles checklist-related requests.
type ChecklistHandler struct {
	checklistService services.ChecklistServicer
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService services.ChecklistServicer) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService}
}

// CreateChecklistRequest represents the request payload for creating a checklist.
type CreateChecklistRequest struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
	Title     string `json:"title" binding:"required"`
}

// UpdateChecklistRequest represents the request payload for retitling a checklist.
type UpdateChecklistRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateChecklist handles the creation of a new checklist
// @Summary     Create a checklist
// @Description Create a checklist for a project, seeded with its default category. A project holds at most one checklist.
// @Tags        checklists
// @Accept      json
// @Produce     json
// @Param       request body CreateChecklistRequest true "Checklist details"
// @Success     201 {object} models.Checklist "Checklist created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Failure     409 {object} ErrorResponse "Project already has a checklist"
// @Router      /checklists [post]
func (h *ChecklistHandler) CreateChecklist(c *gin.Context) {
	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, err := h.checklistService.CreateChecklist(req.ProjectID, req.Title)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"checklist": checklist})
}

// GetChecklistByID handles the retrieval of a specific checklist
// @Summary     Get checklist by ID
// @Description Get a specific checklist by ID
// @Tags        checklists
// @Produce     json
// @Param       id path string true "Checklist ID"
// @Success     200 {object} models.Checklist "Checklist details"
// @Failure     400 {object} ErrorResponse "Invalid checklist ID"
// @Failure     404 {object} ErrorResponse "Checklist not found"
// @Router      /checklists/{id} [get]
func (h *ChecklistHandler) GetChecklistByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	checklist, err := h.checklistService.GetChecklistByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checklist": checklist})
}

// UpdateChecklist handles retitling a checklist
// @Summary     Update checklist
// @Description Change a checklist's title
// @Tags        checklists
// @Accept      json
// @Produce     json
// @Param       id path string true "Checklist ID"
// @Param       request body UpdateChecklistRequest true "Updated checklist details"
// @Success     200 {object} models.Checklist "Updated checklist"
// @Failure     400 {object} ErrorResponse "Invalid input or checklist ID"
// @Failure     404 {object} ErrorResponse "Checklist not found"
// @Router      /checklists/{id} [put]
func (h *ChecklistHandler) UpdateChecklist(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, err := h.checklistService.UpdateChecklist(id, req.Title)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checklist": checklist})
}

// DeleteChecklist handles deleting a checklist with its contents
// @Summary     Delete checklist
// @Description Delete a checklist together with its categories and todos
// @Tags        checklists
// @Produce     json
// @Param       id path string true "Checklist ID"
// @Success     200 {object} MessageResponse "Checklist deleted"
// @Failure     400 {object} ErrorResponse "Invalid checklist ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /checklists/{id} [delete]
func (h *ChecklistHandler) DeleteChecklist(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.checklistService.DeleteChecklist(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Checklist deleted successfully"})
}
