// Package repository persists saved searches. Criteria are stored as
// the serialized JSON of the filter request; the engine revalidates
// them on every execution.
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

const savedSearchNotFoundMessage = "saved search not found"

// SavedSearch is a saved_searches row.
type SavedSearch struct {
	ID              uuid.UUID
	ChurchID        uuid.UUID
	CreatedBy       uuid.UUID
	Name            string
	Description     *string
	Criteria        string
	IsPublic        bool
	IsDynamic       bool
	LastExecuted    *time.Time
	LastResultCount *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateParams carries the column values for an insert.
type CreateParams struct {
	ChurchID    uuid.UUID
	CreatedBy   uuid.UUID
	Name        string
	Description *string
	Criteria    string
	IsPublic    bool
	IsDynamic   bool
}

// UpdateParams carries a full post-merge row for an update.
type UpdateParams struct {
	ChurchID    uuid.UUID
	ID          uuid.UUID
	Name        string
	Description *string
	Criteria    string
	IsPublic    bool
	IsDynamic   bool
}

// Repository defines saved search persistence.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (SavedSearch, error)
	GetByID(ctx context.Context, churchID, id uuid.UUID) (SavedSearch, error)
	ListAccessible(ctx context.Context, churchID, userID uuid.UUID) ([]SavedSearch, error)
	Update(ctx context.Context, params UpdateParams) (SavedSearch, error)
	Delete(ctx context.Context, churchID, id uuid.UUID) error
	RecordExecution(ctx context.Context, churchID, id uuid.UUID, executedAt time.Time, resultCount int64) error
	ListDynamic(ctx context.Context, limit int) ([]SavedSearch, error)
}

const savedSearchColumns = `id, church_id, created_by, name, description, criteria,
        is_public, is_dynamic, last_executed, last_result_count, created_at, updated_at`

// Repo implements Repository over a pgx pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a saved search repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func scanSavedSearch(row pgx.Row) (SavedSearch, error) {
	var s SavedSearch
	err := row.Scan(
		&s.ID,
		&s.ChurchID,
		&s.CreatedBy,
		&s.Name,
		&s.Description,
		&s.Criteria,
		&s.IsPublic,
		&s.IsDynamic,
		&s.LastExecuted,
		&s.LastResultCount,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create inserts a saved search.
func (r *Repo) Create(ctx context.Context, params CreateParams) (SavedSearch, error) {
	query := fmt.Sprintf(`
        INSERT INTO saved_searches (
            church_id, created_by, name, description, criteria, is_public, is_dynamic
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING %s`, savedSearchColumns)

	saved, err := scanSavedSearch(r.pool.QueryRow(ctx, query,
		params.ChurchID,
		params.CreatedBy,
		params.Name,
		params.Description,
		params.Criteria,
		params.IsPublic,
		params.IsDynamic,
	))
	if err != nil {
		return SavedSearch{}, fmt.Errorf("create saved search: %w", err)
	}
	return saved, nil
}

// GetByID retrieves a saved search within the church.
func (r *Repo) GetByID(ctx context.Context, churchID, id uuid.UUID) (SavedSearch, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM saved_searches
        WHERE church_id = $1 AND id = $2`, savedSearchColumns)

	saved, err := scanSavedSearch(r.pool.QueryRow(ctx, query, churchID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedSearch{}, apperr.NotFound(savedSearchNotFoundMessage)
		}
		return SavedSearch{}, fmt.Errorf("get saved search by id: %w", err)
	}
	return saved, nil
}

// ListAccessible lists the user's own saved searches plus the public
// ones within the church.
func (r *Repo) ListAccessible(ctx context.Context, churchID, userID uuid.UUID) ([]SavedSearch, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM saved_searches
        WHERE church_id = $1 AND (created_by = $2 OR is_public)
        ORDER BY name ASC`, savedSearchColumns)

	rows, err := r.pool.Query(ctx, query, churchID, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	searches := make([]SavedSearch, 0)
	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		searches = append(searches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return searches, nil
}

// Update replaces the saved search definition.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (SavedSearch, error) {
	query := fmt.Sprintf(`
        UPDATE saved_searches SET
            name = $3, description = $4, criteria = $5, is_public = $6,
            is_dynamic = $7, updated_at = now()
        WHERE church_id = $1 AND id = $2
        RETURNING %s`, savedSearchColumns)

	saved, err := scanSavedSearch(r.pool.QueryRow(ctx, query,
		params.ChurchID,
		params.ID,
		params.Name,
		params.Description,
		params.Criteria,
		params.IsPublic,
		params.IsDynamic,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedSearch{}, apperr.NotFound(savedSearchNotFoundMessage)
		}
		return SavedSearch{}, fmt.Errorf("update saved search: %w", err)
	}
	return saved, nil
}

// Delete removes a saved search.
func (r *Repo) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM saved_searches WHERE church_id = $1 AND id = $2", churchID, id)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(savedSearchNotFoundMessage)
	}
	return nil
}

// RecordExecution stores when the search last ran and how many members
// it matched.
func (r *Repo) RecordExecution(ctx context.Context, churchID, id uuid.UUID, executedAt time.Time, resultCount int64) error {
	_, err := r.pool.Exec(ctx, `
        UPDATE saved_searches SET last_executed = $3, last_result_count = $4
        WHERE church_id = $1 AND id = $2`,
		churchID, id, executedAt, resultCount)
	if err != nil {
		return fmt.Errorf("record saved search execution: %w", err)
	}
	return nil
}

// ListDynamic lists dynamic saved searches across all churches, oldest
// refresh first, for the background re-count worker.
func (r *Repo) ListDynamic(ctx context.Context, limit int) ([]SavedSearch, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM saved_searches
        WHERE is_dynamic
        ORDER BY last_executed ASC NULLS FIRST
        LIMIT $1`, savedSearchColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list dynamic saved searches: %w", err)
	}
	defer rows.Close()

	searches := make([]SavedSearch, 0)
	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		searches = append(searches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dynamic saved searches: %w", err)
	}
	return searches, nil
}

var _ Repository = (*Repo)(nil)
