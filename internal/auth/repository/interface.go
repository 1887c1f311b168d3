package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account belonging to a church tenant.
type User struct {
	ID           uuid.UUID
	ChurchID     uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterChurchParams carries everything needed to provision a new
// church together with its first admin account.
type RegisterChurchParams struct {
	ChurchName   string
	ChurchEmail  string
	ChurchPhone  *string
	Country      string
	AdminEmail   string
	PasswordHash string
	FirstName    string
	LastName     string
}

// AuthRepository defines the data operations used by the auth service.
type AuthRepository interface {
	RegisterChurch(ctx context.Context, params RegisterChurchParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)

	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
