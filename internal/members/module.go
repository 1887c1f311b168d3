// Package members provides the member bounded context module.
package members

import (
	"membercare_backend/internal/events"
	apphttp "membercare_backend/internal/http"
	"membercare_backend/internal/members/handler"
	"membercare_backend/internal/members/repository"
	"membercare_backend/internal/members/service"
	"membercare_backend/internal/storage"
	"membercare_backend/platform/config"
	"membercare_backend/platform/logger"
	"membercare_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the member bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the members module. photos may be
// nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, photos storage.PhotoStore, bus events.Bus, val *validator.Validator, cfg *config.Config, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, photos, bus, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "members"
}

// Service returns the service layer for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts member routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/members")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.POST("/search", m.handler.Search)
	group.GET("/:id", m.handler.GetByID)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.PUT("/:id/tags", m.handler.UpdateTags)
	group.POST("/:id/photo/presign", m.handler.PresignPhoto)
	group.GET("/:id/photo", m.handler.PhotoURL)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
