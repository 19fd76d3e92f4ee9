package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/services"
)

type EvidenceHandler struct {
	svc services.EvidenceService
}

func NewEvidenceHandler(svc services.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{svc: svc}
}

type updateEvidenceRequest struct {
	ItemStatusID *uuid.UUID `json:"item_status_id"`
	Description  *string    `json:"description"`
}

// Create accepts multipart form data: a required "file" part plus
// assignment_id, optional item_status_id and description fields.
func (h *EvidenceHandler) Create(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.PostForm("assignment_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var itemStatusID *uuid.UUID
	if raw := c.PostForm("item_status_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		itemStatusID = &id
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	defer file.Close()

	evidence, err := h.svc.Create(c.Request.Context(), services.CreateEvidenceInput{
		AssignmentID: assignmentID,
		ItemStatusID: itemStatusID,
		Description:  c.PostForm("description"),
		FileName:     fileHeader.Filename,
		File:         file,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"evidence": evidence})
}

func (h *EvidenceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	evidence, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"evidence": evidence})
}

func (h *EvidenceHandler) List(c *gin.Context) {
	if raw := c.Query("assignment"); raw != "" {
		assignmentID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		rows, err := h.svc.ListByAssignment(c.Request.Context(), assignmentID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, gin.H{"evidence": rows})
		return
	}
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"evidence": rows})
}

func (h *EvidenceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req updateEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	evidence, err := h.svc.Update(c.Request.Context(), id, services.UpdateEvidenceInput{
		ItemStatusID: req.ItemStatusID,
		Description:  req.Description,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"evidence": evidence})
}

func (h *EvidenceHandler) Delete(c *gin.Context) {
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
