// Package repository persists donations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"membercare_backend/platform/apperr"
)

// Donation is a donations row.
type Donation struct {
	ID          uuid.UUID
	ChurchID    uuid.UUID
	MemberID    uuid.UUID
	AmountCents int64
	Currency    string
	DonatedAt   time.Time
	Note        *string
	CreatedAt   time.Time
}

// RecordParams carries the column values for an insert.
type RecordParams struct {
	ChurchID    uuid.UUID
	MemberID    uuid.UUID
	AmountCents int64
	Currency    string
	DonatedAt   time.Time
	Note        *string
}

// ListParams filters the donation listing.
type ListParams struct {
	ChurchID uuid.UUID
	MemberID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Offset   int
	Limit    int
}

// Repository defines donation persistence.
type Repository interface {
	Record(ctx context.Context, params RecordParams) (Donation, error)
	List(ctx context.Context, params ListParams) ([]Donation, int64, int64, error)
}

// Repo implements Repository over a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a donation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Record inserts a donation for a member of the church. The guarded
// INSERT fails when the member belongs to another tenant.
func (r *Repo) Record(ctx context.Context, params RecordParams) (Donation, error) {
	var d Donation
	err := r.pool.QueryRow(ctx, `
        INSERT INTO donations (church_id, member_id, amount_cents, currency, donated_at, note)
        SELECT $1, m.id, $3, $4, $5, $6
        FROM members m
        WHERE m.church_id = $1 AND m.id = $2 AND m.deleted_at IS NULL
        RETURNING id, church_id, member_id, amount_cents, currency, donated_at, note, created_at`,
		params.ChurchID,
		params.MemberID,
		params.AmountCents,
		params.Currency,
		params.DonatedAt,
		params.Note,
	).Scan(&d.ID, &d.ChurchID, &d.MemberID, &d.AmountCents, &d.Currency, &d.DonatedAt, &d.Note, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Donation{}, apperr.NotFound("member not found")
		}
		return Donation{}, fmt.Errorf("record donation: %w", err)
	}
	return d, nil
}

// List retrieves a page of donations plus the total amount over the
// whole filtered set.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Donation, int64, int64, error) {
	where := "church_id = $1"
	args := []any{params.ChurchID}
	argIdx := 2

	if params.MemberID != nil {
		where += fmt.Sprintf(" AND member_id = $%d", argIdx)
		args = append(args, *params.MemberID)
		argIdx++
	}
	if params.From != nil {
		where += fmt.Sprintf(" AND donated_at >= $%d", argIdx)
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		where += fmt.Sprintf(" AND donated_at <= $%d", argIdx)
		args = append(args, *params.To)
		argIdx++
	}

	var total, totalCents int64
	summary := fmt.Sprintf(
		"SELECT COUNT(*), COALESCE(SUM(amount_cents), 0) FROM donations WHERE %s", where)
	if err := r.pool.QueryRow(ctx, summary, args...).Scan(&total, &totalCents); err != nil {
		return nil, 0, 0, fmt.Errorf("summarize donations: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT id, church_id, member_id, amount_cents, currency, donated_at, note, created_at
        FROM donations
        WHERE %s
        ORDER BY donated_at DESC, id DESC
        LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	donations := make([]Donation, 0)
	for rows.Next() {
		var d Donation
		if err := rows.Scan(&d.ID, &d.ChurchID, &d.MemberID, &d.AmountCents, &d.Currency, &d.DonatedAt, &d.Note, &d.CreatedAt); err != nil {
			return nil, 0, 0, fmt.Errorf("scan donation: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("list donations: %w", err)
	}
	return donations, total, totalCents, nil
}

var _ Repository = (*Repo)(nil)
