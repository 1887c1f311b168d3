// Package repository persists members in Postgres. Every query scopes
// on church_id first; a member row is unreachable from another tenant.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"membercare_backend/platform/apperr"
)

const memberNotFoundMessage = "member not found"

const memberColumns = `m.id, m.church_id, m.first_name, m.last_name, m.phone_number, m.email,
        m.sex, m.marital_status, m.date_of_birth, m.status, m.member_since, m.is_verified,
        m.profile_completeness, m.tags, m.city, m.suburb, m.region, m.country, m.photo_key,
        m.created_at, m.updated_at`

// Repo implements Repository over a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a member repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(
		&m.ID,
		&m.ChurchID,
		&m.FirstName,
		&m.LastName,
		&m.PhoneNumber,
		&m.Email,
		&m.Sex,
		&m.MaritalStatus,
		&m.DateOfBirth,
		&m.Status,
		&m.MemberSince,
		&m.IsVerified,
		&m.ProfileCompleteness,
		&m.Tags,
		&m.City,
		&m.Suburb,
		&m.Region,
		&m.Country,
		&m.PhotoKey,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// Create inserts a member row.
func (r *Repo) Create(ctx context.Context, params CreateMemberParams) (Member, error) {
	query := fmt.Sprintf(`
        INSERT INTO members AS m (
            church_id, first_name, last_name, phone_number, email, sex, marital_status,
            date_of_birth, status, member_since, profile_completeness, tags,
            city, suburb, region, country
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING %s`, memberColumns)

	member, err := scanMember(r.pool.QueryRow(ctx, query,
		params.ChurchID,
		params.FirstName,
		params.LastName,
		params.PhoneNumber,
		params.Email,
		params.Sex,
		params.MaritalStatus,
		params.DateOfBirth,
		params.Status,
		params.MemberSince,
		params.ProfileCompleteness,
		params.Tags,
		params.City,
		params.Suburb,
		params.Region,
		params.Country,
	))
	if err != nil {
		return Member{}, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

// GetByID retrieves a member within the church.
func (r *Repo) GetByID(ctx context.Context, churchID, id uuid.UUID) (Member, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM members m
        WHERE m.church_id = $1 AND m.id = $2 AND m.deleted_at IS NULL`, memberColumns)

	member, err := scanMember(r.pool.QueryRow(ctx, query, churchID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, apperr.NotFound(memberNotFoundMessage)
		}
		return Member{}, fmt.Errorf("get member by id: %w", err)
	}
	return member, nil
}

// listSortColumns whitelists sortable columns for the plain listing.
var listSortColumns = map[string]string{
	"firstName":   "m.first_name",
	"lastName":    "m.last_name",
	"status":      "m.status",
	"memberSince": "m.member_since",
	"createdAt":   "m.created_at",
}

// List retrieves a page of members with optional name search and
// status filter.
func (r *Repo) List(ctx context.Context, params ListMembersParams) ([]Member, int64, error) {
	where := "m.church_id = $1 AND m.deleted_at IS NULL"
	args := []any{params.ChurchID}
	argIdx := 2

	if params.Search != "" {
		where += fmt.Sprintf(" AND (m.first_name ILIKE $%d OR m.last_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" {
		where += fmt.Sprintf(" AND m.status = $%d", argIdx)
		args = append(args, params.Status)
		argIdx++
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM members m WHERE %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	orderBy := "m.last_name ASC, m.first_name ASC"
	if col, ok := listSortColumns[params.SortBy]; ok {
		direction := "ASC"
		if strings.EqualFold(params.SortOrder, "desc") {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s, m.id ASC", col, direction)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM members m
        WHERE %s
        ORDER BY %s
        LIMIT $%d OFFSET $%d`, memberColumns, where, orderBy, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	return members, total, nil
}

// Update replaces the member's profile columns.
func (r *Repo) Update(ctx context.Context, params UpdateMemberParams) (Member, error) {
	query := fmt.Sprintf(`
        UPDATE members AS m SET
            first_name = $3, last_name = $4, phone_number = $5, email = $6,
            sex = $7, marital_status = $8, date_of_birth = $9, status = $10,
            member_since = $11, profile_completeness = $12, tags = $13,
            city = $14, suburb = $15, region = $16, country = $17,
            updated_at = now()
        WHERE m.church_id = $1 AND m.id = $2 AND m.deleted_at IS NULL
        RETURNING %s`, memberColumns)

	member, err := scanMember(r.pool.QueryRow(ctx, query,
		params.ChurchID,
		params.ID,
		params.FirstName,
		params.LastName,
		params.PhoneNumber,
		params.Email,
		params.Sex,
		params.MaritalStatus,
		params.DateOfBirth,
		params.Status,
		params.MemberSince,
		params.ProfileCompleteness,
		params.Tags,
		params.City,
		params.Suburb,
		params.Region,
		params.Country,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, apperr.NotFound(memberNotFoundMessage)
		}
		return Member{}, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

// SoftDelete marks a member deleted; the row stays for audit.
func (r *Repo) SoftDelete(ctx context.Context, churchID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE members SET deleted_at = now(), updated_at = now()
        WHERE church_id = $1 AND id = $2 AND deleted_at IS NULL`,
		churchID, id)
	if err != nil {
		return fmt.Errorf("soft delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(memberNotFoundMessage)
	}
	return nil
}

// SetTags replaces the member's tag array.
func (r *Repo) SetTags(ctx context.Context, churchID, id uuid.UUID, tags []string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE members SET tags = $3, updated_at = now()
        WHERE church_id = $1 AND id = $2 AND deleted_at IS NULL`,
		churchID, id, tags)
	if err != nil {
		return fmt.Errorf("set member tags: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(memberNotFoundMessage)
	}
	return nil
}

// SetPhotoKey stores or clears the profile photo object key.
func (r *Repo) SetPhotoKey(ctx context.Context, churchID, id uuid.UUID, photoKey *string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE members SET photo_key = $3, updated_at = now()
        WHERE church_id = $1 AND id = $2 AND deleted_at IS NULL`,
		churchID, id, photoKey)
	if err != nil {
		return fmt.Errorf("set member photo key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(memberNotFoundMessage)
	}
	return nil
}

var _ Repository = (*Repo)(nil)
