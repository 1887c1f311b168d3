// Package repository persists fellowships and member assignments. The
// member_fellowships join table also backs the "fellowships" search
// field.
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

const fellowshipNotFoundMessage = "fellowship not found"

// Fellowship is a fellowships row plus its member count.
type Fellowship struct {
	ID          uuid.UUID
	ChurchID    uuid.UUID
	Name        string
	Description *string
	MeetingDay  *string
	MemberCount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FellowshipMember is one assignment, joined with the member's name.
type FellowshipMember struct {
	MemberID  uuid.UUID
	FirstName string
	LastName  string
	JoinedAt  time.Time
}

// Repository defines fellowship persistence.
type Repository interface {
	Create(ctx context.Context, churchID uuid.UUID, name string, description, meetingDay *string) (Fellowship, error)
	GetByID(ctx context.Context, churchID, id uuid.UUID) (Fellowship, error)
	List(ctx context.Context, churchID uuid.UUID) ([]Fellowship, error)
	Update(ctx context.Context, churchID, id uuid.UUID, name string, description, meetingDay *string) (Fellowship, error)
	Delete(ctx context.Context, churchID, id uuid.UUID) error
	AddMember(ctx context.Context, churchID, id, memberID uuid.UUID) error
	RemoveMember(ctx context.Context, churchID, id, memberID uuid.UUID) error
	ListMembers(ctx context.Context, churchID, id uuid.UUID) ([]FellowshipMember, error)
}

const fellowshipColumns = `f.id, f.church_id, f.name, f.description, f.meeting_day,
        (SELECT COUNT(*) FROM member_fellowships mf WHERE mf.fellowship_id = f.id),
        f.created_at, f.updated_at`

// Repo implements Repository over a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a fellowship repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func scanFellowship(row pgx.Row) (Fellowship, error) {
	var f Fellowship
	err := row.Scan(
		&f.ID,
		&f.ChurchID,
		&f.Name,
		&f.Description,
		&f.MeetingDay,
		&f.MemberCount,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	return f, err
}

// Create inserts a fellowship.
func (r *Repo) Create(ctx context.Context, churchID uuid.UUID, name string, description, meetingDay *string) (Fellowship, error) {
	query := fmt.Sprintf(`
        INSERT INTO fellowships AS f (church_id, name, description, meeting_day)
        VALUES ($1, $2, $3, $4)
        RETURNING %s`, fellowshipColumns)

	fellowship, err := scanFellowship(r.pool.QueryRow(ctx, query, churchID, name, description, meetingDay))
	if err != nil {
		return Fellowship{}, fmt.Errorf("create fellowship: %w", err)
	}
	return fellowship, nil
}

// GetByID retrieves a fellowship within the church.
func (r *Repo) GetByID(ctx context.Context, churchID, id uuid.UUID) (Fellowship, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM fellowships f
        WHERE f.church_id = $1 AND f.id = $2`, fellowshipColumns)

	fellowship, err := scanFellowship(r.pool.QueryRow(ctx, query, churchID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Fellowship{}, apperr.NotFound(fellowshipNotFoundMessage)
		}
		return Fellowship{}, fmt.Errorf("get fellowship by id: %w", err)
	}
	return fellowship, nil
}

// List retrieves every fellowship of the church.
func (r *Repo) List(ctx context.Context, churchID uuid.UUID) ([]Fellowship, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM fellowships f
        WHERE f.church_id = $1
        ORDER BY f.name ASC`, fellowshipColumns)

	rows, err := r.pool.Query(ctx, query, churchID)
	if err != nil {
		return nil, fmt.Errorf("list fellowships: %w", err)
	}
	defer rows.Close()

	fellowships := make([]Fellowship, 0)
	for rows.Next() {
		f, err := scanFellowship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fellowship: %w", err)
		}
		fellowships = append(fellowships, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fellowships: %w", err)
	}
	return fellowships, nil
}

// Update replaces the fellowship definition.
func (r *Repo) Update(ctx context.Context, churchID, id uuid.UUID, name string, description, meetingDay *string) (Fellowship, error) {
	query := fmt.Sprintf(`
        UPDATE fellowships AS f
        SET name = $3, description = $4, meeting_day = $5, updated_at = now()
        WHERE f.church_id = $1 AND f.id = $2
        RETURNING %s`, fellowshipColumns)

	fellowship, err := scanFellowship(r.pool.QueryRow(ctx, query, churchID, id, name, description, meetingDay))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Fellowship{}, apperr.NotFound(fellowshipNotFoundMessage)
		}
		return Fellowship{}, fmt.Errorf("update fellowship: %w", err)
	}
	return fellowship, nil
}

// Delete removes a fellowship and its assignments.
func (r *Repo) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM fellowships WHERE church_id = $1 AND id = $2", churchID, id)
	if err != nil {
		return fmt.Errorf("delete fellowship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(fellowshipNotFoundMessage)
	}
	return nil
}

// AddMember assigns a member to the fellowship. Both rows must belong
// to the same church; the guarded INSERT enforces it in one statement.
func (r *Repo) AddMember(ctx context.Context, churchID, id, memberID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        INSERT INTO member_fellowships (member_id, fellowship_id)
        SELECT m.id, f.id
        FROM members m, fellowships f
        WHERE m.church_id = $1 AND m.id = $3 AND m.deleted_at IS NULL
          AND f.church_id = $1 AND f.id = $2
        ON CONFLICT (member_id, fellowship_id) DO NOTHING`,
		churchID, id, memberID)
	if err != nil {
		return fmt.Errorf("add fellowship member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either an unknown member/fellowship or an existing
		// assignment; re-check which to report accurately.
		if _, err := r.GetByID(ctx, churchID, id); err != nil {
			return err
		}
		var exists bool
		err := r.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM members WHERE church_id = $1 AND id = $2 AND deleted_at IS NULL)",
			churchID, memberID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("add fellowship member: %w", err)
		}
		if !exists {
			return apperr.NotFound("member not found")
		}
	}
	return nil
}

// RemoveMember removes an assignment.
func (r *Repo) RemoveMember(ctx context.Context, churchID, id, memberID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
        DELETE FROM member_fellowships mf
        USING fellowships f
        WHERE mf.fellowship_id = f.id AND f.church_id = $1
          AND mf.fellowship_id = $2 AND mf.member_id = $3`,
		churchID, id, memberID)
	if err != nil {
		return fmt.Errorf("remove fellowship member: %w", err)
	}
	return nil
}

// ListMembers retrieves the fellowship's members with their names.
func (r *Repo) ListMembers(ctx context.Context, churchID, id uuid.UUID) ([]FellowshipMember, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT mf.member_id, m.first_name, m.last_name, mf.joined_at
        FROM member_fellowships mf
        JOIN fellowships f ON f.id = mf.fellowship_id
        JOIN members m ON m.id = mf.member_id
        WHERE f.church_id = $1 AND f.id = $2 AND m.deleted_at IS NULL
        ORDER BY m.last_name ASC, m.first_name ASC`,
		churchID, id)
	if err != nil {
		return nil, fmt.Errorf("list fellowship members: %w", err)
	}
	defer rows.Close()

	members := make([]FellowshipMember, 0)
	for rows.Next() {
		var m FellowshipMember
		if err := rows.Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan fellowship member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fellowship members: %w", err)
	}
	return members, nil
}

var _ Repository = (*Repo)(nil)
