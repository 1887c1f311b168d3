// Package handler exposes the donation HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membercare_backend/internal/donations/service"
	"membercare_backend/internal/donations/transport"
	"membercare_backend/platform/httpkit"
	"membercare_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for donations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a donation handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) churchScope(c *gin.Context) (uuid.UUID, bool) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetChurchID(c)
}

// Record stores a donation.
// POST /api/v1/donations
func (h *Handler) Record(c *gin.Context) {
	var req transport.RecordDonationRequest
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

	result, err := h.svc.Record(c.Request.Context(), churchID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List retrieves donations with optional member and date filters.
// GET /api/v1/donations
func (h *Handler) List(c *gin.Context) {
	var req transport.ListDonationsRequest
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
