package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"membercare_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const userColumns = `u.id, u.church_id, u.email, u.password_hash, u.first_name, u.last_name, u.roles, u.created_at, u.updated_at`

// Repository provides PostgreSQL-backed auth persistence.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.ChurchID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Roles,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// RegisterChurch provisions a church and its first admin account in one
// transaction. Either both rows exist afterwards or neither does.
func (r *Repository) RegisterChurch(ctx context.Context, params RegisterChurchParams) (User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return User{}, fmt.Errorf("begin register church: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var churchID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO churches (name, email, phone, country)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, params.ChurchName, params.ChurchEmail, params.ChurchPhone, params.Country).Scan(&churchID)
	if err != nil {
		return User{}, mapRegisterError(err)
	}

	user, err := scanUser(tx.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO users AS u (church_id, email, password_hash, first_name, last_name, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, userColumns), churchID, params.AdminEmail, params.PasswordHash, params.FirstName, params.LastName, []string{"admin"}))
	if err != nil {
		return User{}, mapRegisterError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return User{}, fmt.Errorf("commit register church: %w", err)
	}
	return user, nil
}

func mapRegisterError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("email already registered")
	}
	return fmt.Errorf("register church: %w", err)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users u WHERE u.email = $1
	`, userColumns), email))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM users u WHERE u.id = $1
	`, userColumns), userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (r *Repository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, tokenHash, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = $1
	`, tokenHash).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
	}
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("get refresh token: %w", err)
	}
	return userID, expiresAt, nil
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return nil
}
