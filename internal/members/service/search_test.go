package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"membercare_backend/internal/events"
	"membercare_backend/internal/members/repository"
	"membercare_backend/internal/members/transport"
	"membercare_backend/internal/search"
	"membercare_backend/platform/apperr"
	"membercare_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	searchCalls  int
	searchParams repository.SearchMembersParams
	searchResult repository.SearchResult
	searchErr    error
}

func (f *fakeRepo) Search(ctx context.Context, params repository.SearchMembersParams) (repository.SearchResult, error) {
	f.searchCalls++
	f.searchParams = params
	return f.searchResult, f.searchErr
}

type searchLimits struct {
	max, def int
}

func (l searchLimits) GetSearchMaxPageSize() int     { return l.max }
func (l searchLimits) GetSearchDefaultPageSize() int { return l.def }

func newTestService(repo *fakeRepo) *Service {
	log := logger.New("development")
	return New(repo, nil, events.NewInMemoryBus(log), searchLimits{max: 100, def: 20}, log)
}

func validSearch() transport.AdvancedSearchRequest {
	return transport.AdvancedSearchRequest{
		Request: search.Request{
			FilterGroups: []search.FilterGroup{
				{Filters: []search.FilterCriteria{
					{Field: "status", Operator: search.OpEquals, Value: "ACTIVE"},
				}},
			},
		},
	}
}

func TestAdvancedSearchRejectsInvalidWithoutTouchingStore(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := transport.AdvancedSearchRequest{
		Request: search.Request{
			FilterGroups: []search.FilterGroup{
				{Filters: []search.FilterCriteria{
					{Field: "nope", Operator: search.OpEquals, Value: "x"},
					{Field: "age", Operator: search.OpContains, Value: "1"},
				}},
			},
		},
	}

	_, err := svc.AdvancedSearch(context.Background(), uuid.New(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.searchCalls != 0 {
		t.Fatalf("repository must not be called for invalid requests, got %d calls", repo.searchCalls)
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	details, ok := appErr.Details.([]search.FieldError)
	if !ok || len(details) != 2 {
		t.Fatalf("expected 2 field errors in details, got %#v", appErr.Details)
	}
}

func TestAdvancedSearchClampsPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validSearch()
	req.Page = 0
	req.PageSize = 5000

	resp, err := svc.AdvancedSearch(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.searchParams.Limit != 100 {
		t.Errorf("Limit = %d, want the 100 cap", repo.searchParams.Limit)
	}
	if repo.searchParams.Offset != 0 {
		t.Errorf("Offset = %d, want 0", repo.searchParams.Offset)
	}
	if resp.Members.Page != 1 || resp.Members.PageSize != 100 {
		t.Errorf("page echo = %d/%d", resp.Members.Page, resp.Members.PageSize)
	}

	req.PageSize = 0
	if _, err := svc.AdvancedSearch(context.Background(), uuid.New(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.searchParams.Limit != 20 {
		t.Errorf("Limit = %d, want the 20 default", repo.searchParams.Limit)
	}
}

func TestAdvancedSearchMetadata(t *testing.T) {
	repo := &fakeRepo{searchResult: repository.SearchResult{
		Total: 42,
		Where: "(lower(m.status) = $2)",
	}}
	svc := newTestService(repo)

	req := transport.AdvancedSearchRequest{
		Request: search.Request{
			GroupOperator: search.LogicalAnd,
			FilterGroups: []search.FilterGroup{
				{
					Operator: search.LogicalOr,
					Filters: []search.FilterCriteria{
						{Field: "status", Operator: search.OpEquals, Value: "ACTIVE"},
						{Field: "status", Operator: search.OpEquals, Value: "VISITOR"},
					},
				},
				{Filters: []search.FilterCriteria{
					{Field: "city", Operator: search.OpEquals, Value: "Accra"},
				}},
			},
		},
	}

	resp, err := svc.AdvancedSearch(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Metadata.TotalFiltersApplied != 3 {
		t.Errorf("TotalFiltersApplied = %d, want 3 (leaf criteria, not groups)", resp.Metadata.TotalFiltersApplied)
	}
	if resp.Metadata.Query != repo.searchResult.Where {
		t.Errorf("Query = %q", resp.Metadata.Query)
	}
	if resp.Members.Total != 42 {
		t.Errorf("Total = %d", resp.Members.Total)
	}
}

func TestAdvancedSearchSortResolution(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := validSearch()
	req.SortBy = "dateOfBirth"
	req.SortOrder = "desc"

	if _, err := svc.AdvancedSearch(context.Background(), uuid.New(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.searchParams.SortCol != "m.date_of_birth" || !repo.searchParams.SortDesc {
		t.Errorf("sort = %q desc=%v", repo.searchParams.SortCol, repo.searchParams.SortDesc)
	}

	req.SortBy = "tags"
	_, err := svc.AdvancedSearch(context.Background(), uuid.New(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for collection sort, got %v", err)
	}
	if !strings.Contains(err.Error(), "tags") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestAdvancedSearchWrapsExecutionFailure(t *testing.T) {
	repo := &fakeRepo{searchErr: context.DeadlineExceeded}
	svc := newTestService(repo)

	_, err := svc.AdvancedSearch(context.Background(), uuid.New(), validSearch())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if strings.Contains(err.Error(), "SELECT") {
		t.Errorf("store internals must not leak: %v", err)
	}
}
