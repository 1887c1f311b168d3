// Package repository provides PostgreSQL-backed church persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"membercare_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const churchColumns = `c.id, c.name, c.email, c.phone, c.country, c.address, c.website, c.created_at, c.updated_at`

// Church is the tenant entity every other record hangs off.
type Church struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Country   string
	Address   *string
	Website   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateChurchParams carries a full profile replacement.
type UpdateChurchParams struct {
	Name    string
	Email   string
	Phone   *string
	Country string
	Address *string
	Website *string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanChurch(row pgx.Row) (Church, error) {
	var ch Church
	err := row.Scan(
		&ch.ID,
		&ch.Name,
		&ch.Email,
		&ch.Phone,
		&ch.Country,
		&ch.Address,
		&ch.Website,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	return ch, err
}

func (r *Repository) GetByID(ctx context.Context, churchID uuid.UUID) (Church, error) {
	church, err := scanChurch(r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM churches c WHERE c.id = $1
	`, churchColumns), churchID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Church{}, apperr.NotFound("church not found")
	}
	if err != nil {
		return Church{}, fmt.Errorf("get church: %w", err)
	}
	return church, nil
}

func (r *Repository) Update(ctx context.Context, churchID uuid.UUID, params UpdateChurchParams) (Church, error) {
	church, err := scanChurch(r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE churches AS c
		SET name = $2, email = $3, phone = $4, country = $5, address = $6, website = $7, updated_at = now()
		WHERE c.id = $1
		RETURNING %s
	`, churchColumns), churchID, params.Name, params.Email, params.Phone, params.Country, params.Address, params.Website))
	if errors.Is(err, pgx.ErrNoRows) {
		return Church{}, apperr.NotFound("church not found")
	}
	if err != nil {
		return Church{}, fmt.Errorf("update church: %w", err)
	}
	return church, nil
}
