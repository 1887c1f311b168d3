// Package fellowships provides the fellowship bounded context module.
package fellowships

import (
	"membercare_backend/internal/fellowships/handler"
	"membercare_backend/internal/fellowships/repository"
	"membercare_backend/internal/fellowships/service"
	apphttp "membercare_backend/internal/http"
	"membercare_backend/platform/logger"
	"membercare_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the fellowship bounded context module implementing
// http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the fellowships module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "fellowships"
}

// RegisterRoutes mounts fellowship routes on the provided router
// context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/fellowships")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.GetByID)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.GET("/:id/members", m.handler.ListMembers)
	group.POST("/:id/members/:memberId", m.handler.AddMember)
	group.DELETE("/:id/members/:memberId", m.handler.RemoveMember)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
