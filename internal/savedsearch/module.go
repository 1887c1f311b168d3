// Package savedsearch provides the saved search bounded context module.
package savedsearch

import (
	apphttp "membercare_backend/internal/http"
	"membercare_backend/internal/savedsearch/handler"
	"membercare_backend/internal/savedsearch/repository"
	"membercare_backend/internal/savedsearch/service"
	"membercare_backend/platform/logger"
	"membercare_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the saved search bounded context module implementing
// http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the saved search module. The
// executor is the member search adapter; the indirection keeps this
// module from importing the members module.
func NewModule(pool *pgxpool.Pool, executor service.Executor, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, executor, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "savedsearch"
}

// Service returns the service layer for the background worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts saved search routes on the provided router
// context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/saved-searches")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.POST("/:id/execute", m.handler.Execute)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
