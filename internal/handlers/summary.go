package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/medaccred/accreditation-backend/internal/services"
)

type SummaryHandler struct {
	svc services.SummaryService
}

func NewSummaryHandler(svc services.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// GET /api/summary
func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"summary": summary})
}
