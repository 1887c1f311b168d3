package repository

import (
	"context"
	"fmt"

	"membercare_backend/internal/search"
)

// tenantScope leads every search WHERE clause. Filters are appended
// after it inside their own parentheses, so they can only narrow the
// result set, never widen it past the church.
const tenantScope = "m.church_id = $1 AND m.deleted_at IS NULL"

func searchWhere(filter string) string {
	return tenantScope + " AND (" + filter + ")"
}

// Search runs a compiled filter expression: one COUNT and one page
// SELECT over the same WHERE clause. The church scope is bound as $1
// before any filter argument.
func (r *Repo) Search(ctx context.Context, params SearchMembersParams) (SearchResult, error) {
	args := search.NewArgs(params.ChurchID)
	filter := params.Compiled.Where(args)
	where := searchWhere(filter)

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM members m WHERE %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args.Values()...).Scan(&total); err != nil {
		return SearchResult{}, fmt.Errorf("count search results: %w", err)
	}

	direction := "ASC"
	if params.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
        SELECT %s FROM members m
        WHERE %s
        ORDER BY %s %s, m.id ASC
        LIMIT %s OFFSET %s`,
		memberColumns, where, params.SortCol, direction,
		args.Add(params.Limit), args.Add(params.Offset))

	rows, err := r.pool.Query(ctx, query, args.Values()...)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search members: %w", err)
	}
	defer rows.Close()

	members := make([]Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return SearchResult{}, fmt.Errorf("scan search result: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return SearchResult{}, fmt.Errorf("search members: %w", err)
	}

	return SearchResult{Members: members, Total: total, Where: filter}, nil
}
