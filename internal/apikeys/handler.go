package apikeys

import (
	"net/http"
	"time"

	"leadscore_backend/internal/events"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/httpkit"
	"leadscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles API key management HTTP requests (admin surface).
type Handler struct {
	repo *Repository
	bus  events.Bus
	val  *validator.Validator
}

// NewHandler creates a new API key handler.
func NewHandler(repo *Repository, bus events.Bus, val *validator.Validator) *Handler {
	return &Handler{repo: repo, bus: bus, val: val}
}

// CreateAPIKeyRequest is the request body for creating a new API key.
type CreateAPIKeyRequest struct {
	CustomerID string `json:"customerId" validate:"required,uuid4"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
}

// APIKeyResponse is returned when listing or creating API keys.
type APIKeyResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	KeyPrefix  string    `json:"keyPrefix"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  string    `json:"createdAt"`
}

// CreateAPIKeyResponse includes the plaintext key (shown only once).
type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"` // plaintext, shown only once
}

// HandleCreateAPIKey creates a new scoring API key.
// POST /api/v1/admin/apikeys
func (h *Handler) HandleCreateAPIKey(c *gin.Context) {
	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "validation error", err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid customer ID", nil)
		return
	}

	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, apperr.CodeInternalError, "failed to generate API key", nil)
		return
	}

	key, err := h.repo.Create(c.Request.Context(), customerID, req.Name, hash, prefix)
	if httpkit.HandleError(c, err) {
		return
	}

	h.bus.Publish(c.Request.Context(), events.APIKeyCreated{
		BaseEvent:  events.NewBaseEvent(),
		KeyID:      key.ID,
		CustomerID: key.CustomerID,
		Name:       key.Name,
		KeyPrefix:  key.KeyPrefix,
	})

	c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKeyResponse: toAPIKeyResponse(key),
		Key:            plaintext,
	})
}

// HandleListAPIKeys lists all scoring API keys.
// GET /api/v1/admin/apikeys
func (h *Handler) HandleListAPIKeys(c *gin.Context) {
	keys, err := h.repo.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	responses := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		responses = append(responses, toAPIKeyResponse(key))
	}
	httpkit.OK(c, gin.H{"keys": responses})
}

// HandleRevokeAPIKey deactivates an API key.
// DELETE /api/v1/admin/apikeys/:keyId
func (h *Handler) HandleRevokeAPIKey(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("keyId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid key ID", nil)
		return
	}

	if err := h.repo.Revoke(c.Request.Context(), keyID); err != nil {
		if err == ErrAPIKeyNotFound {
			httpkit.Error(c, http.StatusNotFound, apperr.CodeInvalidRequest, "API key not found", nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toAPIKeyResponse(key APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         key.ID,
		CustomerID: key.CustomerID,
		Name:       key.Name,
		KeyPrefix:  key.KeyPrefix,
		IsActive:   key.IsActive,
		CreatedAt:  key.CreatedAt.Format(time.RFC3339),
	}
}
