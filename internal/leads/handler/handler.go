// Package handler exposes the lead scoring HTTP endpoints.
package handler

import (
	"net/http"

	"leadscore_backend/internal/apikeys"
	"leadscore_backend/internal/leads/service"
	"leadscore_backend/internal/leads/transport"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/httpkit"
	"leadscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func NewHandler(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// HandleScoreLead scores a single lead.
// POST /api/v1/leads/score
func (h *Handler) HandleScoreLead(c *gin.Context) {
	customerID, ok := apikeys.CustomerID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, apperr.CodeInvalidAPIKey, "missing customer context", nil)
		return
	}

	var req transport.ScoreLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	resp, err := h.svc.Score(c.Request.Context(), customerID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleScoreBatch scores up to 100 leads in one call.
// POST /api/v1/leads/score/batch
func (h *Handler) HandleScoreBatch(c *gin.Context) {
	customerID, ok := apikeys.CustomerID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, apperr.CodeInvalidAPIKey, "missing customer context", nil)
		return
	}

	var req transport.BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid request body", nil)
		return
	}
	if len(req.Leads) == 0 {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "leads must not be empty", nil)
		return
	}

	resp, err := h.svc.ScoreBatch(c.Request.Context(), customerID, req.Leads)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleGetLead returns the stored score for an external record.
// GET /api/v1/leads/:externalId
func (h *Handler) HandleGetLead(c *gin.Context) {
	customerID, ok := apikeys.CustomerID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, apperr.CodeInvalidAPIKey, "missing customer context", nil)
		return
	}

	externalID := c.Param("externalId")
	externalSource := c.Query("source")

	resp, err := h.svc.GetLead(c.Request.Context(), customerID, externalID, externalSource)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleRecordOutcome stamps a real-world result on a scored lead.
// POST /api/v1/leads/:externalId/outcome
func (h *Handler) HandleRecordOutcome(c *gin.Context) {
	customerID, ok := apikeys.CustomerID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, apperr.CodeInvalidAPIKey, "missing customer context", nil)
		return
	}

	var req transport.RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "outcome must be one of converted, lost, disqualified, stale", nil)
		return
	}

	externalID := c.Param("externalId")
	externalSource := c.Query("source")

	resp, err := h.svc.RecordOutcome(c.Request.Context(), customerID, externalID, externalSource, req.Outcome)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
