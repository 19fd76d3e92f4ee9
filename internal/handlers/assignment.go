package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/services"
)

type AssignmentHandler struct {
	svc services.AssignmentService
}

func NewAssignmentHandler(svc services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

type createAssignmentRequest struct {
	TemplateID uuid.UUID `json:"template_id" binding:"required"`
	ProgramID  uuid.UUID `json:"program_id" binding:"required"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
}

type updateAssignmentRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	assignment, err := h.svc.Create(c.Request.Context(), services.CreateAssignmentInput{
		TemplateID: req.TemplateID,
		ProgramID:  req.ProgramID,
		Title:      req.Title,
		Status:     req.Status,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"assignment": assignment})
}

// Get returns the assignment with its item statuses preloaded.
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	assignment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assignments": assignments})
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	assignment, err := h.svc.Update(c.Request.Context(), id, services.UpdateAssignmentInput{
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

// EnsureItemStatuses backfills a pending status row for every template item
// the assignment does not cover yet, and returns the created rows.
func (h *AssignmentHandler) EnsureItemStatuses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	created, err := h.svc.EnsureItemStatuses(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"created": created})
}

func (h *AssignmentHandler) Rollup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	rollup, err := h.svc.Rollup(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"rollup": rollup})
}
