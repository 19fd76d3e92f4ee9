package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/services"
)

type OrgHandler struct {
	svc services.OrgService
}

func NewOrgHandler(svc services.OrgService) *OrgHandler {
	return &OrgHandler{svc: svc}
}

type createInstitutionRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
	Type string `json:"type"`
}

type createProgramRequest struct {
	InstitutionID uuid.UUID `json:"institution_id" binding:"required"`
	Name          string    `json:"name" binding:"required"`
	Level         string    `json:"level"`
	Discipline    string    `json:"discipline"`
}

func (h *OrgHandler) ListInstitutions(c *gin.Context) {
	institutions, err := h.svc.ListInstitutions(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"institutions": institutions})
}

func (h *OrgHandler) GetInstitution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	institution, err := h.svc.GetInstitution(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"institution": institution})
}

func (h *OrgHandler) CreateInstitution(c *gin.Context) {
	var req createInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	institution, err := h.svc.CreateInstitution(c.Request.Context(), services.CreateInstitutionInput{
		Name: req.Name,
		City: req.City,
		Type: req.Type,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"institution": institution})
}

func (h *OrgHandler) DeleteInstitution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.DeleteInstitution(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}

func (h *OrgHandler) ListPrograms(c *gin.Context) {
	programs, err := h.svc.ListPrograms(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"programs": programs})
}

func (h *OrgHandler) GetProgram(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	program, err := h.svc.GetProgram(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"program": program})
}

func (h *OrgHandler) CreateProgram(c *gin.Context) {
	var req createProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	program, err := h.svc.CreateProgram(c.Request.Context(), services.CreateProgramInput{
		InstitutionID: req.InstitutionID,
		Name:          req.Name,
		Level:         req.Level,
		Discipline:    req.Discipline,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"program": program})
}

func (h *OrgHandler) DeleteProgram(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.DeleteProgram(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
