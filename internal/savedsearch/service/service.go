// Package service implements saved search business logic. Criteria are
// validated through the filter engine before they are ever persisted,
// and revalidated when executed, so a stale saved search degrades into
// a clear validation error instead of broken SQL.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/savedsearch/repository"
	"membercare_backend/internal/savedsearch/transport"
	"membercare_backend/internal/search"
	"membercare_backend/platform/apperr"
	"membercare_backend/platform/logger"
)

// ExecutionResult is what the member search executor hands back: the
// full client payload plus the match count for bookkeeping.
type ExecutionResult struct {
	Payload any
	Total   int64
}

// Executor runs a filter expression against the member store. The
// members module provides the implementation through an adapter.
type Executor interface {
	Execute(ctx context.Context, churchID uuid.UUID, req search.Request, page, pageSize int) (ExecutionResult, error)
}

// Service provides business logic for saved searches.
type Service struct {
	repo     repository.Repository
	executor Executor
	log      *logger.Logger
}

// New creates a saved search service.
func New(repo repository.Repository, executor Executor, log *logger.Logger) *Service {
	return &Service{repo: repo, executor: executor, log: log}
}

// Create validates and persists a saved search.
func (s *Service) Create(ctx context.Context, churchID, userID uuid.UUID, req transport.CreateSavedSearchRequest) (transport.SavedSearchResponse, error) {
	criteria, err := marshalCriteria(req.Criteria)
	if err != nil {
		return transport.SavedSearchResponse{}, err
	}

	saved, err := s.repo.Create(ctx, repository.CreateParams{
		ChurchID:    churchID,
		CreatedBy:   userID,
		Name:        req.Name,
		Description: req.Description,
		Criteria:    criteria,
		IsPublic:    req.IsPublic,
		IsDynamic:   req.IsDynamic,
	})
	if err != nil {
		return transport.SavedSearchResponse{}, err
	}
	return toResponse(saved, userID)
}

// Get retrieves a saved search the user can access.
func (s *Service) Get(ctx context.Context, churchID, userID, id uuid.UUID) (transport.SavedSearchResponse, error) {
	saved, err := s.accessible(ctx, churchID, userID, id)
	if err != nil {
		return transport.SavedSearchResponse{}, err
	}
	return toResponse(saved, userID)
}

// List retrieves the user's own saved searches plus public ones.
func (s *Service) List(ctx context.Context, churchID, userID uuid.UUID) (transport.SavedSearchListResponse, error) {
	searches, err := s.repo.ListAccessible(ctx, churchID, userID)
	if err != nil {
		return transport.SavedSearchListResponse{}, err
	}

	items := make([]transport.SavedSearchResponse, 0, len(searches))
	for _, saved := range searches {
		resp, err := toResponse(saved, userID)
		if err != nil {
			// A row with unreadable criteria is skipped, not fatal to
			// the whole listing.
			s.log.DatabaseError("decode saved search criteria", err)
			continue
		}
		items = append(items, resp)
	}
	return transport.SavedSearchListResponse{Items: items, Total: len(items)}, nil
}

// Update modifies a saved search. Only the creator may modify it, even
// when it is public.
func (s *Service) Update(ctx context.Context, churchID, userID, id uuid.UUID, req transport.UpdateSavedSearchRequest) (transport.SavedSearchResponse, error) {
	current, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return transport.SavedSearchResponse{}, err
	}
	if current.CreatedBy != userID {
		return transport.SavedSearchResponse{}, apperr.Forbidden("only the creator can modify a saved search")
	}

	params := repository.UpdateParams{
		ChurchID:    churchID,
		ID:          id,
		Name:        current.Name,
		Description: current.Description,
		Criteria:    current.Criteria,
		IsPublic:    current.IsPublic,
		IsDynamic:   current.IsDynamic,
	}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.Description != nil {
		params.Description = req.Description
	}
	if req.Criteria != nil {
		criteria, err := marshalCriteria(*req.Criteria)
		if err != nil {
			return transport.SavedSearchResponse{}, err
		}
		params.Criteria = criteria
	}
	if req.IsPublic != nil {
		params.IsPublic = *req.IsPublic
	}
	if req.IsDynamic != nil {
		params.IsDynamic = *req.IsDynamic
	}

	saved, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.SavedSearchResponse{}, err
	}
	return toResponse(saved, userID)
}

// Delete removes a saved search. Creator only.
func (s *Service) Delete(ctx context.Context, churchID, userID, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return err
	}
	if current.CreatedBy != userID {
		return apperr.Forbidden("only the creator can delete a saved search")
	}
	return s.repo.Delete(ctx, churchID, id)
}

// Execute rehydrates the stored criteria, runs them through the member
// search executor, and records the execution on the saved search.
func (s *Service) Execute(ctx context.Context, churchID, userID, id uuid.UUID, req transport.ExecuteSavedSearchRequest) (transport.ExecuteSavedSearchResponse, error) {
	saved, err := s.accessible(ctx, churchID, userID, id)
	if err != nil {
		return transport.ExecuteSavedSearchResponse{}, err
	}

	criteria, err := unmarshalCriteria(saved.Criteria)
	if err != nil {
		return transport.ExecuteSavedSearchResponse{}, err
	}

	result, err := s.executor.Execute(ctx, churchID, criteria, req.Page, req.PageSize)
	if err != nil {
		return transport.ExecuteSavedSearchResponse{}, err
	}

	executedAt := time.Now()
	if err := s.repo.RecordExecution(ctx, churchID, id, executedAt, result.Total); err != nil {
		// The search succeeded; losing the bookkeeping is not worth a
		// failed response.
		s.log.DatabaseError("record saved search execution", err)
	}
	saved.LastExecuted = &executedAt
	saved.LastResultCount = &result.Total

	resp, err := toResponse(saved, userID)
	if err != nil {
		return transport.ExecuteSavedSearchResponse{}, err
	}
	return transport.ExecuteSavedSearchResponse{SavedSearch: resp, Results: result.Payload}, nil
}

func (s *Service) accessible(ctx context.Context, churchID, userID, id uuid.UUID) (repository.SavedSearch, error) {
	saved, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return repository.SavedSearch{}, err
	}
	if saved.CreatedBy != userID && !saved.IsPublic {
		// Present private searches of others as absent.
		return repository.SavedSearch{}, apperr.NotFound("saved search not found")
	}
	return saved, nil
}

// marshalCriteria validates through the engine, then serializes. A
// saved search that cannot execute must never reach the table.
func marshalCriteria(req search.Request) (string, error) {
	if _, errs := search.Compile(req); errs != nil {
		return "", apperr.Validation("invalid search criteria").WithDetails(errs)
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "serialize search criteria", err)
	}
	return string(raw), nil
}

func unmarshalCriteria(raw string) (search.Request, error) {
	var req search.Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return search.Request{}, apperr.Wrap(apperr.KindInternal, "stored search criteria are unreadable", err)
	}
	return req, nil
}

func toResponse(saved repository.SavedSearch, userID uuid.UUID) (transport.SavedSearchResponse, error) {
	criteria, err := unmarshalCriteria(saved.Criteria)
	if err != nil {
		return transport.SavedSearchResponse{}, err
	}

	resp := transport.SavedSearchResponse{
		ID:              saved.ID,
		Name:            saved.Name,
		Description:     saved.Description,
		Criteria:        criteria,
		IsPublic:        saved.IsPublic,
		IsDynamic:       saved.IsDynamic,
		CreatedBy:       saved.CreatedBy,
		IsOwner:         saved.CreatedBy == userID,
		LastResultCount: saved.LastResultCount,
		CreatedAt:       saved.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       saved.UpdatedAt.Format(time.RFC3339),
	}
	if saved.LastExecuted != nil {
		executed := saved.LastExecuted.Format(time.RFC3339)
		resp.LastExecuted = &executed
	}
	return resp, nil
}
