// Package donations provides the donation bounded context module.
package donations

import (
	"membercare_backend/internal/donations/handler"
	"membercare_backend/internal/donations/repository"
	"membercare_backend/internal/donations/service"
	apphttp "membercare_backend/internal/http"
	"membercare_backend/platform/logger"
	"membercare_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the donation bounded context module implementing
// http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the donations module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "donations"
}

// RegisterRoutes mounts donation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/donations")
	group.POST("", m.handler.Record)
	group.GET("", m.handler.List)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
