package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/members/repository"
	"membercare_backend/internal/members/transport"
	"membercare_backend/internal/search"
	"membercare_backend/platform/apperr"
)

// defaultSortColumn orders results when the client names no sort field.
const defaultSortColumn = "m.last_name"

// AdvancedSearch validates and executes a filter expression. On any
// validation failure the repository is never touched and the complete
// error list travels back in the error details. The execution is
// read-only and carries the caller's context so cancellation reaches
// the database.
func (s *Service) AdvancedSearch(ctx context.Context, churchID uuid.UUID, req transport.AdvancedSearchRequest) (transport.AdvancedSearchResponse, error) {
	compiled, fieldErrs := search.Compile(req.Request)
	if fieldErrs != nil {
		s.log.SearchRejected(churchID.String(), len(fieldErrs))
		return transport.AdvancedSearchResponse{}, apperr.Validation("invalid search criteria").WithDetails(fieldErrs)
	}
	for _, warning := range compiled.Warnings {
		s.log.SearchWarning(churchID.String(), warning)
	}

	sortCol, sortDesc, err := resolveSort(req.SortBy, req.SortOrder)
	if err != nil {
		return transport.AdvancedSearchResponse{}, err
	}

	page, pageSize := s.clampPage(req.Page, req.PageSize)

	started := time.Now()
	result, err := s.repo.Search(ctx, repository.SearchMembersParams{
		ChurchID: churchID,
		Compiled: compiled,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
		SortCol:  sortCol,
		SortDesc: sortDesc,
	})
	if err != nil {
		s.log.DatabaseError("advanced search", err)
		return transport.AdvancedSearchResponse{}, apperr.Wrap(apperr.KindInternal, "search failed", err)
	}
	elapsed := time.Since(started)

	s.log.SearchExecuted(churchID.String(), compiled.FilterCount(), result.Total, elapsed.Milliseconds())

	return transport.AdvancedSearchResponse{
		Members: toMemberListResponse(result.Members, result.Total, page, pageSize),
		Metadata: transport.SearchMetadata{
			TotalFiltersApplied: compiled.FilterCount(),
			ExecutionTimeMs:     elapsed.Milliseconds(),
			Query:               result.Where,
		},
	}, nil
}

// resolveSort maps a public field name to its SQL expression through
// the catalog. Collection fields are not sortable; unknown names are
// validation errors rather than silently ignored.
func resolveSort(sortBy, sortOrder string) (string, bool, error) {
	desc := strings.EqualFold(sortOrder, "desc")
	if sortBy == "" {
		return defaultSortColumn, desc, nil
	}
	col, ok := search.SortColumn(sortBy)
	if !ok {
		return "", false, apperr.Validation("cannot sort by field " + sortBy)
	}
	return col, desc, nil
}
