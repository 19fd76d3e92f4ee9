package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/services"
)

type ItemStatusHandler struct {
	svc services.ItemStatusService
}

func NewItemStatusHandler(svc services.ItemStatusService) *ItemStatusHandler {
	return &ItemStatusHandler{svc: svc}
}

type createItemStatusRequest struct {
	AssignmentID uuid.UUID `json:"assignment_id" binding:"required"`
	ItemID       uuid.UUID `json:"item_id" binding:"required"`
	Status       string    `json:"status"`
	Comment      string    `json:"comment"`
	Score        *int      `json:"score"`
}

type updateItemStatusRequest struct {
	Status  *string `json:"status"`
	Comment *string `json:"comment"`
	Score   *int    `json:"score"`
}

func (h *ItemStatusHandler) Create(c *gin.Context) {
	var req createItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	status, err := h.svc.Create(c.Request.Context(), services.CreateItemStatusInput{
		AssignmentID: req.AssignmentID,
		ItemID:       req.ItemID,
		Status:       req.Status,
		Comment:      req.Comment,
		Score:        req.Score,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"item_status": status})
}

func (h *ItemStatusHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	status, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"item_status": status})
}

// List returns every status row, or only one assignment's rows when the
// assignment query parameter is present.
func (h *ItemStatusHandler) List(c *gin.Context) {
	if raw := c.Query("assignment"); raw != "" {
		assignmentID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		statuses, err := h.svc.ListByAssignment(c.Request.Context(), assignmentID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, gin.H{"item_statuses": statuses})
		return
	}
	statuses, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"item_statuses": statuses})
}

func (h *ItemStatusHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req updateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	status, err := h.svc.Update(c.Request.Context(), id, services.UpdateItemStatusInput{
		Status:  req.Status,
		Comment: req.Comment,
		Score:   req.Score,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"item_status": status})
}

func (h *ItemStatusHandler) Delete(c *gin.Context) {
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
