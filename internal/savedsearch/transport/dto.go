package transport

import (
	"github.com/google/uuid"

	"membercare_backend/internal/search"
)

type CreateSavedSearchRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=100"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=500"`
	Criteria    search.Request `json:"criteria" validate:"required"`
	IsPublic    bool           `json:"isPublic"`
	IsDynamic   bool           `json:"isDynamic"`
}

type UpdateSavedSearchRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Criteria    *search.Request `json:"criteria,omitempty"`
	IsPublic    *bool           `json:"isPublic,omitempty"`
	IsDynamic   *bool           `json:"isDynamic,omitempty"`
}

type ExecuteSavedSearchRequest struct {
	Page     int `json:"page" validate:"omitempty,min=1"`
	PageSize int `json:"pageSize" validate:"omitempty,min=1"`
}

type SavedSearchResponse struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description,omitempty"`
	Criteria        search.Request `json:"criteria"`
	IsPublic        bool           `json:"isPublic"`
	IsDynamic       bool           `json:"isDynamic"`
	CreatedBy       uuid.UUID      `json:"createdBy"`
	IsOwner         bool           `json:"isOwner"`
	LastExecuted    *string        `json:"lastExecuted,omitempty"`
	LastResultCount *int64         `json:"lastResultCount,omitempty"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

type SavedSearchListResponse struct {
	Items []SavedSearchResponse `json:"items"`
	Total int                   `json:"total"`
}

// ExecuteSavedSearchResponse carries the search results plus the saved
// search whose bookkeeping was just refreshed.
type ExecuteSavedSearchResponse struct {
	SavedSearch SavedSearchResponse `json:"savedSearch"`
	Results     any                 `json:"results"`
}
