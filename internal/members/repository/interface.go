package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/search"
)

// Member is a members row. Optional profile columns are pointers so
// IS_NULL search semantics match what is actually stored.
type Member struct {
	ID                  uuid.UUID
	ChurchID            uuid.UUID
	FirstName           string
	LastName            string
	PhoneNumber         *string
	Email               *string
	Sex                 *string
	MaritalStatus       *string
	DateOfBirth         *time.Time
	Status              string
	MemberSince         *time.Time
	IsVerified          bool
	ProfileCompleteness int
	Tags                []string
	City                *string
	Suburb              *string
	Region              *string
	Country             *string
	PhotoKey            *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreateMemberParams carries the column values for an insert. The
// service has already normalized phone numbers and tags.
type CreateMemberParams struct {
	ChurchID            uuid.UUID
	FirstName           string
	LastName            string
	PhoneNumber         *string
	Email               *string
	Sex                 *string
	MaritalStatus       *string
	DateOfBirth         *time.Time
	Status              string
	MemberSince         *time.Time
	ProfileCompleteness int
	Tags                []string
	City                *string
	Suburb              *string
	Region              *string
	Country             *string
}

// UpdateMemberParams carries a full post-merge row for an update.
type UpdateMemberParams struct {
	ChurchID            uuid.UUID
	ID                  uuid.UUID
	FirstName           string
	LastName            string
	PhoneNumber         *string
	Email               *string
	Sex                 *string
	MaritalStatus       *string
	DateOfBirth         *time.Time
	Status              string
	MemberSince         *time.Time
	ProfileCompleteness int
	Tags                []string
	City                *string
	Suburb              *string
	Region              *string
	Country             *string
}

// ListMembersParams is the simple (non-engine) listing filter.
type ListMembersParams struct {
	ChurchID  uuid.UUID
	Search    string
	Status    string
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// SearchMembersParams executes a compiled filter expression.
type SearchMembersParams struct {
	ChurchID  uuid.UUID
	Compiled  *search.Compiled
	Offset    int
	Limit     int
	SortCol  string
	SortDesc bool
}

// SearchResult is the page plus the facts the response metadata needs.
type SearchResult struct {
	Members []Member
	Total   int64
	// Where is the rendered filter fragment, echoed in metadata.
	Where string
}

// Repository defines member persistence.
type Repository interface {
	Create(ctx context.Context, params CreateMemberParams) (Member, error)
	GetByID(ctx context.Context, churchID, id uuid.UUID) (Member, error)
	List(ctx context.Context, params ListMembersParams) ([]Member, int64, error)
	Update(ctx context.Context, params UpdateMemberParams) (Member, error)
	SoftDelete(ctx context.Context, churchID, id uuid.UUID) error
	SetTags(ctx context.Context, churchID, id uuid.UUID, tags []string) error
	SetPhotoKey(ctx context.Context, churchID, id uuid.UUID, photoKey *string) error
	Search(ctx context.Context, params SearchMembersParams) (SearchResult, error)
}
