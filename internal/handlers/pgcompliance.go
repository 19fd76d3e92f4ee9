package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/repos"
	"github.com/medaccred/accreditation-backend/internal/requestdata"
	"github.com/medaccred/accreditation-backend/internal/services"
)

type PGComplianceHandler struct {
	svc services.PGComplianceService
}

func NewPGComplianceHandler(svc services.PGComplianceService) *PGComplianceHandler {
	return &PGComplianceHandler{svc: svc}
}

type createPGComplianceRequest struct {
	InstitutionID *uuid.UUID `json:"institution_id"`
	ItemID        uuid.UUID  `json:"item_id" binding:"required"`
	Status        string     `json:"status"`
	Comment       string     `json:"comment"`
	EvidenceURL   string     `json:"evidence_url"`
}

type updatePGComplianceRequest struct {
	Status      *string `json:"status"`
	Comment     *string `json:"comment"`
	EvidenceURL *string `json:"evidence_url"`
}

// actorID pulls the authenticated user out of the request context. Writes to
// institution-scoped records always stamp updated_by from this identity.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (h *PGComplianceHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return
	}
	var req createPGComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	record, err := h.svc.Create(c.Request.Context(), actor, services.CreatePGComplianceInput{
		InstitutionID: req.InstitutionID,
		ItemID:        req.ItemID,
		Status:        req.Status,
		Comment:       req.Comment,
		EvidenceURL:   req.EvidenceURL,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"compliance": record})
}

func (h *PGComplianceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	record, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"compliance": record})
}

// List accepts optional institution and item query parameters, each a UUID.
func (h *PGComplianceHandler) List(c *gin.Context) {
	var filter repos.PGComplianceFilter
	if raw := c.Query("institution"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		filter.InstitutionID = &id
	}
	if raw := c.Query("item"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		filter.ItemID = &id
	}
	records, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"compliance": records})
}

func (h *PGComplianceHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req updatePGComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	record, err := h.svc.Update(c.Request.Context(), actor, id, services.UpdatePGComplianceInput{
		Status:      req.Status,
		Comment:     req.Comment,
		EvidenceURL: req.EvidenceURL,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"compliance": record})
}

func (h *PGComplianceHandler) Delete(c *gin.Context) {
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
