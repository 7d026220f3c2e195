package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "merkliste/internal/errors"
	"merkliste/internal/services"
	"merkliste/internal/tree"
)

// TreeHandler serves the denormalized checklist views and the
// full-tree save endpoints backed by the reconciler.
type TreeHandler struct {
	treeService services.TreeServicer
}

// NewTreeHandler creates a new TreeHandler.
func NewTreeHandler(treeService services.TreeServicer) *TreeHandler {
	return &TreeHandler{treeService: treeService}
}

// GetChecklistTree handles loading the categorized view
// @Summary     Get categorized checklist tree
// @Description Get a project's checklist with categories and the uncategorized bucket. The body is null when the project has no checklist yet.
// @Tags        tree
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} tree.ChecklistTree "Categorized tree, or null"
// @Failure     400 {object} ErrorResponse "Invalid project ID"
// @Router      /projects/{id}/tree [get]
func (h *TreeHandler) GetChecklistTree(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	t, err := h.treeService.GetChecklistWithCategories(projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A null body signals "needs initialization" to the client.
	c.JSON(http.StatusOK, t)
}

// SaveChecklistTree handles a full-tree save
// @Summary     Save categorized checklist tree
// @Description Reconcile the store against a complete desired-state tree and return the reassembled result
// @Tags        tree
// @Accept      json
// @Produce     json
// @Param       id path string true "Project ID"
// @Param       request body tree.ChecklistTree true "Desired tree"
// @Success     200 {object} tree.ChecklistTree "Persisted tree"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Constraint violation"
// @Router      /projects/{id}/tree [put]
func (h *TreeHandler) SaveChecklistTree(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var desired tree.ChecklistTree
	if err := c.ShouldBindJSON(&desired); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if desired.ProjectID != "" && desired.ProjectID != projectID {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "tree project_id does not match the path"))
		return
	}
	desired.ProjectID = projectID

	saved, err := h.treeService.SaveChecklistWithCategories(desired)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetFlatChecklist handles loading the legacy flat view
// @Summary     Get flat checklist
// @Description Get a project's checklist as one flat todo sequence. The body is null when the project has no checklist yet.
// @Tags        tree
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} tree.FlatChecklist "Flat checklist, or null"
// @Failure     400 {object} ErrorResponse "Invalid project ID"
// @Router      /projects/{id}/checklist [get]
func (h *TreeHandler) GetFlatChecklist(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	checklist, err := h.treeService.GetChecklistWithTodos(projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, checklist)
}

// SaveFlatChecklist handles the legacy flat-model save
// @Summary     Save flat checklist
// @Description Reconcile the store against a flat desired-state checklist and return the reassembled result
// @Tags        tree
// @Accept      json
// @Produce     json
// @Param       id path string true "Project ID"
// @Param       request body tree.FlatChecklist true "Desired checklist"
// @Success     200 {object} tree.FlatChecklist "Persisted checklist"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Constraint violation"
// @Router      /projects/{id}/checklist [put]
func (h *TreeHandler) SaveFlatChecklist(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var desired tree.FlatChecklist
	if err := c.ShouldBindJSON(&desired); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if desired.ProjectID != "" && desired.ProjectID != projectID {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "checklist project_id does not match the path"))
		return
	}
	desired.ProjectID = projectID

	saved, err := h.treeService.SaveChecklist(desired)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}
