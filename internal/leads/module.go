// Package leads wires the lead scoring bounded context: transport DTOs,
// the scoring service, persistence, and HTTP routes.
package leads

import (
	"leadscore_backend/internal/apikeys"
	"leadscore_backend/internal/events"
	apphttp "leadscore_backend/internal/http"
	"leadscore_backend/internal/leads/handler"
	"leadscore_backend/internal/leads/repository"
	"leadscore_backend/internal/leads/service"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the leads context for registration with the router.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	apiAuth *apikeys.Module
	log     *logger.Logger
}

// NewModule builds the leads context. The apikeys module supplies the
// X-API-Key middleware that guards every scoring route.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger, apiAuth *apikeys.Module, defaultRegion string) *Module {
	repo := repository.NewRepository(pool)
	svc := service.NewService(repo, bus, log, defaultRegion)
	return &Module{
		handler: handler.NewHandler(svc, val),
		repo:    repo,
		apiAuth: apiAuth,
		log:     log,
	}
}

func (m *Module) Name() string {
	return "leads"
}

// Repository exposes the persistence layer for the stale sweep worker.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the scoring routes under /api/v1/leads behind
// API-key authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")
	group.Use(apikeys.AuthMiddleware(m.apiAuth.Repository(), m.log))

	group.POST("/score", m.handler.HandleScoreLead)
	group.POST("/score/batch", m.handler.HandleScoreBatch)
	group.GET("/:externalId", m.handler.HandleGetLead)
	group.POST("/:externalId/outcome", m.handler.HandleRecordOutcome)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
