package transport

import (
	"github.com/google/uuid"

	"membercare_backend/internal/search"
)

// Member CRUD

type CreateMemberRequest struct {
	FirstName     string   `json:"firstName" validate:"required,min=1,max=100"`
	LastName      string   `json:"lastName" validate:"required,min=1,max=100"`
	PhoneNumber   *string  `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Sex           *string  `json:"sex,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
	MaritalStatus *string  `json:"maritalStatus,omitempty" validate:"omitempty,oneof=SINGLE MARRIED DIVORCED WIDOWED"`
	DateOfBirth   *string  `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status        string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE VISITOR TRANSFERRED DECEASED"`
	MemberSince   *string  `json:"memberSince,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	City          *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Suburb        *string  `json:"suburb,omitempty" validate:"omitempty,max=100"`
	Region        *string  `json:"region,omitempty" validate:"omitempty,max=100"`
	Country       *string  `json:"country,omitempty" validate:"omitempty,max=100"`
}

type UpdateMemberRequest struct {
	FirstName     *string  `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName      *string  `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	PhoneNumber   *string  `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Sex           *string  `json:"sex,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
	MaritalStatus *string  `json:"maritalStatus,omitempty" validate:"omitempty,oneof=SINGLE MARRIED DIVORCED WIDOWED"`
	DateOfBirth   *string  `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE VISITOR TRANSFERRED DECEASED"`
	MemberSince   *string  `json:"memberSince,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	City          *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Suburb        *string  `json:"suburb,omitempty" validate:"omitempty,max=100"`
	Region        *string  `json:"region,omitempty" validate:"omitempty,max=100"`
	Country       *string  `json:"country,omitempty" validate:"omitempty,max=100"`
}

type ListMembersRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Status    string `form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE VISITOR TRANSFERRED DECEASED"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,max=50"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type MemberResponse struct {
	ID                  uuid.UUID `json:"id"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	PhoneNumber         *string   `json:"phoneNumber,omitempty"`
	Email               *string   `json:"email,omitempty"`
	Sex                 *string   `json:"sex,omitempty"`
	MaritalStatus       *string   `json:"maritalStatus,omitempty"`
	DateOfBirth         *string   `json:"dateOfBirth,omitempty"`
	Status              string    `json:"status"`
	MemberSince         *string   `json:"memberSince,omitempty"`
	IsVerified          bool      `json:"isVerified"`
	ProfileCompleteness int       `json:"profileCompleteness"`
	Tags                []string  `json:"tags"`
	City                *string   `json:"city,omitempty"`
	Suburb              *string   `json:"suburb,omitempty"`
	Region              *string   `json:"region,omitempty"`
	Country             *string   `json:"country,omitempty"`
	HasPhoto            bool      `json:"hasPhoto"`
	CreatedAt           string    `json:"createdAt"`
	UpdatedAt           string    `json:"updatedAt"`
}

type MemberListResponse struct {
	Items      []MemberResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// Tag management

type UpdateTagsRequest struct {
	Add    []string `json:"add,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	Remove []string `json:"remove,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
}

// Profile photos

type PresignPhotoRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// Advanced search

// AdvancedSearchRequest wraps the filter expression with pagination and
// sorting. The expression itself is validated by the search engine, not
// by struct tags.
type AdvancedSearchRequest struct {
	search.Request
	Page      int    `json:"page" validate:"omitempty,min=1"`
	PageSize  int    `json:"pageSize" validate:"omitempty,min=1"`
	SortBy    string `json:"sortBy" validate:"omitempty,max=50"`
	SortOrder string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// SearchMetadata echoes execution facts back to the client.
type SearchMetadata struct {
	TotalFiltersApplied int    `json:"totalFiltersApplied"`
	ExecutionTimeMs     int64  `json:"executionTimeMs"`
	Query               string `json:"query"`
}

type AdvancedSearchResponse struct {
	Members  MemberListResponse `json:"members"`
	Metadata SearchMetadata     `json:"metadata"`
}
