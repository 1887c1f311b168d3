// Package handler exposes the member HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membercare_backend/internal/members/service"
	"membercare_backend/internal/members/transport"
	"membercare_backend/platform/httpkit"
	"membercare_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid member id"
)

// Handler handles HTTP requests for members.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a member handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) churchScope(c *gin.Context) (uuid.UUID, bool) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetChurchID(c)
}

func (h *Handler) memberID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// Create creates a member.
// POST /api/v1/members
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateMemberRequest
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

// GetByID retrieves a member.
// GET /api/v1/members/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.memberID(c)
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

// List retrieves a paginated member listing.
// GET /api/v1/members
func (h *Handler) List(c *gin.Context) {
	var req transport.ListMembersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
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

	result, err := h.svc.List(c.Request.Context(), churchID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update updates a member profile.
// PUT /api/v1/members/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	var req transport.UpdateMemberRequest
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

// Delete soft-deletes a member.
// DELETE /api/v1/members/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.memberID(c)
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

// Search executes an advanced filter expression.
// POST /api/v1/members/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.AdvancedSearchRequest
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

	result, err := h.svc.AdvancedSearch(c.Request.Context(), churchID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateTags adds and removes member tags.
// PUT /api/v1/members/:id/tags
func (h *Handler) UpdateTags(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	var req transport.UpdateTagsRequest
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

	result, err := h.svc.UpdateTags(c.Request.Context(), churchID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PresignPhoto returns a presigned upload URL for a profile photo.
// POST /api/v1/members/:id/photo/presign
func (h *Handler) PresignPhoto(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	var req transport.PresignPhotoRequest
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

	result, err := h.svc.PresignPhotoUpload(c.Request.Context(), churchID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PhotoURL returns a presigned download URL for the profile photo.
// GET /api/v1/members/:id/photo
func (h *Handler) PhotoURL(c *gin.Context) {
	id, ok := h.memberID(c)
	if !ok {
		return
	}
	churchID, ok := h.churchScope(c)
	if !ok {
		return
	}

	result, err := h.svc.PhotoDownloadURL(c.Request.Context(), churchID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
