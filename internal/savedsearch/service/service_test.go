package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/savedsearch/repository"
	"membercare_backend/internal/savedsearch/transport"
	"membercare_backend/internal/search"
	"membercare_backend/platform/apperr"
	"membercare_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	created     *repository.CreateParams
	stored      repository.SavedSearch
	getErr      error
	updated     *repository.UpdateParams
	deleted     bool
	recordedAt  *time.Time
	recordCount int64
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.SavedSearch, error) {
	f.created = &params
	return repository.SavedSearch{
		ID:        uuid.New(),
		ChurchID:  params.ChurchID,
		CreatedBy: params.CreatedBy,
		Name:      params.Name,
		Criteria:  params.Criteria,
		IsPublic:  params.IsPublic,
		IsDynamic: params.IsDynamic,
	}, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, churchID, id uuid.UUID) (repository.SavedSearch, error) {
	if f.getErr != nil {
		return repository.SavedSearch{}, f.getErr
	}
	return f.stored, nil
}

func (f *fakeRepo) Update(ctx context.Context, params repository.UpdateParams) (repository.SavedSearch, error) {
	f.updated = &params
	updated := f.stored
	updated.Name = params.Name
	updated.Criteria = params.Criteria
	return updated, nil
}

func (f *fakeRepo) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	f.deleted = true
	return nil
}

func (f *fakeRepo) RecordExecution(ctx context.Context, churchID, id uuid.UUID, executedAt time.Time, resultCount int64) error {
	f.recordedAt = &executedAt
	f.recordCount = resultCount
	return nil
}

type fakeExecutor struct {
	calls  int
	result ExecutionResult
	err    error
}

func (f *fakeExecutor) Execute(ctx context.Context, churchID uuid.UUID, req search.Request, page, pageSize int) (ExecutionResult, error) {
	f.calls++
	return f.result, f.err
}

func validCriteria() search.Request {
	return search.Request{
		FilterGroups: []search.FilterGroup{
			{Filters: []search.FilterCriteria{
				{Field: "status", Operator: search.OpEquals, Value: "ACTIVE"},
			}},
		},
	}
}

func criteriaJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(validCriteria())
	if err != nil {
		t.Fatalf("marshal criteria: %v", err)
	}
	return string(raw)
}

func TestCreateValidatesCriteria(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &fakeExecutor{}, logger.New("development"))

	req := transport.CreateSavedSearchRequest{
		Name: "bad",
		Criteria: search.Request{
			FilterGroups: []search.FilterGroup{
				{Filters: []search.FilterCriteria{
					{Field: "shoeSize", Operator: search.OpEquals, Value: "44"},
				}},
			},
		},
	}

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("invalid criteria must never be persisted")
	}
}

func TestCreatePersistsSerializedCriteria(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &fakeExecutor{}, logger.New("development"))

	resp, err := svc.Create(context.Background(), uuid.New(), uuid.New(), transport.CreateSavedSearchRequest{
		Name:      "active members",
		Criteria:  validCriteria(),
		IsDynamic: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created == nil {
		t.Fatal("repository was not called")
	}

	var stored search.Request
	if err := json.Unmarshal([]byte(repo.created.Criteria), &stored); err != nil {
		t.Fatalf("stored criteria are not valid JSON: %v", err)
	}
	if stored.FilterCount() != 1 {
		t.Errorf("stored FilterCount = %d", stored.FilterCount())
	}
	if !resp.IsDynamic || !resp.IsOwner {
		t.Errorf("response flags: dynamic=%v owner=%v", resp.IsDynamic, resp.IsOwner)
	}
}

func TestUpdateIsCreatorOnly(t *testing.T) {
	creator := uuid.New()
	churchID := uuid.New()
	repo := &fakeRepo{stored: repository.SavedSearch{
		ID:        uuid.New(),
		ChurchID:  churchID,
		CreatedBy: creator,
		Name:      "everyone",
		Criteria:  criteriaJSON(t),
		IsPublic:  true,
	}}
	svc := New(repo, &fakeExecutor{}, logger.New("development"))

	name := "renamed"
	_, err := svc.Update(context.Background(), churchID, uuid.New(), repo.stored.ID, transport.UpdateSavedSearchRequest{Name: &name})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-creator, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("update must not reach the repository")
	}

	if _, err := svc.Update(context.Background(), churchID, creator, repo.stored.ID, transport.UpdateSavedSearchRequest{Name: &name}); err != nil {
		t.Fatalf("creator update failed: %v", err)
	}
	if repo.updated == nil || repo.updated.Name != "renamed" {
		t.Errorf("updated params = %+v", repo.updated)
	}
}

func TestDeleteIsCreatorOnly(t *testing.T) {
	creator := uuid.New()
	churchID := uuid.New()
	repo := &fakeRepo{stored: repository.SavedSearch{
		ID:        uuid.New(),
		ChurchID:  churchID,
		CreatedBy: creator,
		Criteria:  criteriaJSON(t),
		IsPublic:  true,
	}}
	svc := New(repo, &fakeExecutor{}, logger.New("development"))

	err := svc.Delete(context.Background(), churchID, uuid.New(), repo.stored.ID)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.deleted {
		t.Fatal("delete must not reach the repository")
	}
}

func TestPrivateSearchHiddenFromOthers(t *testing.T) {
	creator := uuid.New()
	churchID := uuid.New()
	repo := &fakeRepo{stored: repository.SavedSearch{
		ID:        uuid.New(),
		ChurchID:  churchID,
		CreatedBy: creator,
		Criteria:  criteriaJSON(t),
		IsPublic:  false,
	}}
	svc := New(repo, &fakeExecutor{}, logger.New("development"))

	_, err := svc.Get(context.Background(), churchID, uuid.New(), repo.stored.ID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("private searches of others must read as not found, got %v", err)
	}
}

func TestExecuteRecordsBookkeeping(t *testing.T) {
	creator := uuid.New()
	churchID := uuid.New()
	repo := &fakeRepo{stored: repository.SavedSearch{
		ID:        uuid.New(),
		ChurchID:  churchID,
		CreatedBy: creator,
		Criteria:  criteriaJSON(t),
	}}
	executor := &fakeExecutor{result: ExecutionResult{Payload: "page", Total: 7}}
	svc := New(repo, executor, logger.New("development"))

	resp, err := svc.Execute(context.Background(), churchID, creator, repo.stored.ID, transport.ExecuteSavedSearchRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if executor.calls != 1 {
		t.Fatalf("executor calls = %d", executor.calls)
	}
	if repo.recordedAt == nil || repo.recordCount != 7 {
		t.Errorf("execution not recorded: at=%v count=%d", repo.recordedAt, repo.recordCount)
	}
	if resp.SavedSearch.LastResultCount == nil || *resp.SavedSearch.LastResultCount != 7 {
		t.Errorf("LastResultCount = %v", resp.SavedSearch.LastResultCount)
	}
	if resp.Results != "page" {
		t.Errorf("Results = %v", resp.Results)
	}
}
