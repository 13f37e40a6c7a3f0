package apikeys

import (
	"net/http"

	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/httpkit"
	"leadscore_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderAPIKey carries the scoring API key on public endpoints.
	HeaderAPIKey = "X-API-Key"
	// ContextCustomerIDKey is the gin context key for the authenticated customer.
	ContextCustomerIDKey = "apiCustomerID"
	// ContextKeyIDKey is the gin context key for the API key record ID.
	ContextKeyIDKey = "apiKeyID"
)

// AuthMiddleware validates the X-API-Key header and sets the customer
// context on the gin context for downstream handlers.
func AuthMiddleware(repo *Repository, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(HeaderAPIKey)
		if apiKey == "" {
			abortInvalidKey(c, "missing API key")
			return
		}

		key, err := repo.GetByHash(c.Request.Context(), HashKey(apiKey))
		if err != nil {
			if log != nil {
				log.APIKeyEvent("validate", safePrefix(apiKey), false, "unknown or inactive key")
			}
			abortInvalidKey(c, "invalid API key")
			return
		}

		c.Set(ContextCustomerIDKey, key.CustomerID)
		c.Set(ContextKeyIDKey, key.ID)
		c.Next()
	}
}

// CustomerID extracts the authenticated customer ID set by AuthMiddleware.
func CustomerID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextCustomerIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func abortInvalidKey(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpkit.ErrorResponse{
		Error: message,
		Code:  apperr.CodeInvalidAPIKey,
	})
}

// safePrefix returns the loggable prefix of a key without leaking the secret.
func safePrefix(plaintext string) string {
	if len(plaintext) < 12 {
		return ""
	}
	return plaintext[:12]
}
