// Package handler exposes the saved search HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membercare_backend/internal/savedsearch/service"
	"membercare_backend/internal/savedsearch/transport"
	"membercare_backend/platform/httpkit"
	"membercare_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid saved search id"
)

// Handler handles HTTP requests for saved searches.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a saved search handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) scope(c *gin.Context) (churchID, userID uuid.UUID, ok bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, uuid.Nil, false
	}
	churchID, ok = httpkit.MustGetChurchID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return churchID, identity.UserID(), true
}

// Create creates a saved search.
// POST /api/v1/saved-searches
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	churchID, userID, ok := h.scope(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), churchID, userID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List retrieves accessible saved searches.
// GET /api/v1/saved-searches
func (h *Handler) List(c *gin.Context) {
	churchID, userID, ok := h.scope(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), churchID, userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves a saved search.
// GET /api/v1/saved-searches/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	churchID, userID, ok := h.scope(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), churchID, userID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update modifies a saved search.
// PUT /api/v1/saved-searches/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.UpdateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	churchID, userID, ok := h.scope(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), churchID, userID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a saved search.
// DELETE /api/v1/saved-searches/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	churchID, userID, ok := h.scope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), churchID, userID, id)) {
		return
	}
	httpkit.NoContent(c)
}

// Execute runs a saved search.
// POST /api/v1/saved-searches/:id/execute
func (h *Handler) Execute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.ExecuteSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	churchID, userID, ok := h.scope(c)
	if !ok {
		return
	}

	result, err := h.svc.Execute(c.Request.Context(), churchID, userID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
