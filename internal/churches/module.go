// Package churches provides the church tenant profile module.
package churches

import (
	"membercare_backend/internal/churches/handler"
	"membercare_backend/internal/churches/repository"
	"membercare_backend/internal/churches/service"
	apphttp "membercare_backend/internal/http"
	"membercare_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the church bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the churches module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "churches"
}

// RegisterRoutes mounts church routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/churches")
	group.GET("/me", m.handler.Get)
	group.PUT("/me", m.handler.Update)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
