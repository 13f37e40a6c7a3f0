// Package apikeys provides the scoring API key bounded context module.
// This file defines the module that encapsulates key management setup and
// route registration.
package apikeys

import (
	"leadscore_backend/internal/events"
	apphttp "leadscore_backend/internal/http"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the API key bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	repo    *Repository
	log     *logger.Logger
}

// NewModule creates and initializes the API key module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	handler := NewHandler(repo, bus, val)

	return &Module{
		handler: handler,
		repo:    repo,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "apikeys"
}

// Repository exposes the key repository so the leads module can build its
// API-key auth middleware from it.
func (m *Module) Repository() *Repository {
	return m.repo
}

// RegisterRoutes mounts API key management routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	adminGroup := ctx.Admin.Group("/apikeys")
	adminGroup.POST("", m.handler.HandleCreateAPIKey)
	adminGroup.GET("", m.handler.HandleListAPIKeys)
	adminGroup.DELETE("/:keyId", m.handler.HandleRevokeAPIKey)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
