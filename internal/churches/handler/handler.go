// Package handler exposes the church profile HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membercare_backend/internal/churches/service"
	"membercare_backend/internal/churches/transport"
	"membercare_backend/platform/httpkit"
	"membercare_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the church profile.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a church handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) churchScope(c *gin.Context) (uuid.UUID, bool) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetChurchID(c)
}

// Get returns the calling tenant's church profile.
// GET /api/v1/churches/me
func (h *Handler) Get(c *gin.Context) {
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), churchID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update replaces the calling tenant's church profile.
// PUT /api/v1/churches/me
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), churchID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
