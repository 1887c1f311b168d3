// Package handler exposes the fellowship HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membercare_backend/internal/fellowships/service"
	"membercare_backend/internal/fellowships/transport"
	"membercare_backend/platform/httpkit"
	"membercare_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid fellowship id"
)

// Handler handles HTTP requests for fellowships.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a fellowship handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) churchScope(c *gin.Context) (uuid.UUID, bool) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetChurchID(c)
}

func pathID(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a fellowship.
// POST /api/v1/fellowships
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateFellowshipRequest
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

	result, err := h.svc.Create(c.Request.Context(), churchID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List retrieves all fellowships.
// GET /api/v1/fellowships
func (h *Handler) List(c *gin.Context) {
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), churchID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID retrieves a fellowship.
// GET /api/v1/fellowships/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), churchID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update modifies a fellowship.
// PUT /api/v1/fellowships/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.UpdateFellowshipRequest
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

	result, err := h.svc.Update(c.Request.Context(), churchID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a fellowship.
// DELETE /api/v1/fellowships/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), churchID, id)) {
		return
	}
	httpkit.NoContent(c)
}

// AddMember assigns a member to the fellowship.
// POST /api/v1/fellowships/:id/members/:memberId
func (h *Handler) AddMember(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId", "invalid member id")
	if !ok {
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.AddMember(c.Request.Context(), churchID, id, memberID)) {
		return
	}
	httpkit.NoContent(c)
}

// RemoveMember removes a member from the fellowship.
// DELETE /api/v1/fellowships/:id/members/:memberId
func (h *Handler) RemoveMember(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId", "invalid member id")
	if !ok {
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.RemoveMember(c.Request.Context(), churchID, id, memberID)) {
		return
	}
	httpkit.NoContent(c)
}

// ListMembers retrieves the fellowship's members.
// GET /api/v1/fellowships/:id/members
func (h *Handler) ListMembers(c *gin.Context) {
	id, ok := pathID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	result, err := h.svc.ListMembers(c.Request.Context(), churchID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
