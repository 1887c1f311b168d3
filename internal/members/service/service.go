// Package service implements member business logic: profile writes with
// phone normalization, tag management, completeness scoring, and the
// advanced search executor.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/events"
	"membercare_backend/internal/members/repository"
	"membercare_backend/internal/members/transport"
	"membercare_backend/internal/storage"
	"membercare_backend/platform/apperr"
	"membercare_backend/platform/config"
	"membercare_backend/platform/logger"
	"membercare_backend/platform/phone"
)

const dateLayout = "2006-01-02"

// Service provides business logic for members.
type Service struct {
	repo   repository.Repository
	photos storage.PhotoStore
	bus    events.Bus
	cfg    config.SearchConfig
	log    *logger.Logger
}

// New creates a member service. photos may be nil when object storage
// is not configured; photo endpoints then fail with a validation error.
func New(repo repository.Repository, photos storage.PhotoStore, bus events.Bus, cfg config.SearchConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, photos: photos, bus: bus, cfg: cfg, log: log}
}

// Create inserts a member and publishes MemberCreated.
func (s *Service) Create(ctx context.Context, churchID uuid.UUID, req transport.CreateMemberRequest) (transport.MemberResponse, error) {
	status := req.Status
	if status == "" {
		status = "ACTIVE"
	}

	dateOfBirth, err := parseDate(req.DateOfBirth)
	if err != nil {
		return transport.MemberResponse{}, apperr.Validation("dateOfBirth must be formatted YYYY-MM-DD")
	}
	memberSince, err := parseDate(req.MemberSince)
	if err != nil {
		return transport.MemberResponse{}, apperr.Validation("memberSince must be formatted YYYY-MM-DD")
	}

	params := repository.CreateMemberParams{
		ChurchID:      churchID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		PhoneNumber:   normalizePhone(req.PhoneNumber),
		Email:         normalizeEmail(req.Email),
		Sex:           req.Sex,
		MaritalStatus: req.MaritalStatus,
		DateOfBirth:   dateOfBirth,
		Status:        status,
		MemberSince:   memberSince,
		Tags:          normalizeTags(req.Tags),
		City:          trimOptional(req.City),
		Suburb:        trimOptional(req.Suburb),
		Region:        trimOptional(req.Region),
		Country:       trimOptional(req.Country),
	}
	params.ProfileCompleteness = completenessFromCreate(params)

	member, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.MemberResponse{}, err
	}

	evt := events.MemberCreated{
		BaseEvent: events.NewBaseEvent(),
		MemberID:  member.ID,
		ChurchID:  churchID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
	}
	if member.Email != nil {
		evt.Email = *member.Email
	}
	s.bus.Publish(ctx, evt)

	return toMemberResponse(member), nil
}

// GetByID retrieves a member.
func (s *Service) GetByID(ctx context.Context, churchID, id uuid.UUID) (transport.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return transport.MemberResponse{}, err
	}
	return toMemberResponse(member), nil
}

// List retrieves a paginated member listing with the simple filters.
func (s *Service) List(ctx context.Context, churchID uuid.UUID, req transport.ListMembersRequest) (transport.MemberListResponse, error) {
	page, pageSize := s.clampPage(req.Page, req.PageSize)

	members, total, err := s.repo.List(ctx, repository.ListMembersParams{
		ChurchID:  churchID,
		Search:    strings.TrimSpace(req.Search),
		Status:    req.Status,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return transport.MemberListResponse{}, err
	}
	return toMemberListResponse(members, total, page, pageSize), nil
}

// Update merges the request into the stored member and recomputes the
// completeness score.
func (s *Service) Update(ctx context.Context, churchID, id uuid.UUID, req transport.UpdateMemberRequest) (transport.MemberResponse, error) {
	current, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return transport.MemberResponse{}, err
	}

	params := repository.UpdateMemberParams{
		ChurchID:      churchID,
		ID:            id,
		FirstName:     current.FirstName,
		LastName:      current.LastName,
		PhoneNumber:   current.PhoneNumber,
		Email:         current.Email,
		Sex:           current.Sex,
		MaritalStatus: current.MaritalStatus,
		DateOfBirth:   current.DateOfBirth,
		Status:        current.Status,
		MemberSince:   current.MemberSince,
		Tags:          current.Tags,
		City:          current.City,
		Suburb:        current.Suburb,
		Region:        current.Region,
		Country:       current.Country,
	}

	if req.FirstName != nil {
		params.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		params.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		params.PhoneNumber = normalizePhone(req.PhoneNumber)
	}
	if req.Email != nil {
		params.Email = normalizeEmail(req.Email)
	}
	if req.Sex != nil {
		params.Sex = req.Sex
	}
	if req.MaritalStatus != nil {
		params.MaritalStatus = req.MaritalStatus
	}
	if req.DateOfBirth != nil {
		parsed, err := parseDate(req.DateOfBirth)
		if err != nil {
			return transport.MemberResponse{}, apperr.Validation("dateOfBirth must be formatted YYYY-MM-DD")
		}
		params.DateOfBirth = parsed
	}
	if req.Status != nil {
		params.Status = *req.Status
	}
	if req.MemberSince != nil {
		parsed, err := parseDate(req.MemberSince)
		if err != nil {
			return transport.MemberResponse{}, apperr.Validation("memberSince must be formatted YYYY-MM-DD")
		}
		params.MemberSince = parsed
	}
	if req.Tags != nil {
		params.Tags = normalizeTags(req.Tags)
	}
	if req.City != nil {
		params.City = trimOptional(req.City)
	}
	if req.Suburb != nil {
		params.Suburb = trimOptional(req.Suburb)
	}
	if req.Region != nil {
		params.Region = trimOptional(req.Region)
	}
	if req.Country != nil {
		params.Country = trimOptional(req.Country)
	}

	params.ProfileCompleteness = completenessFromUpdate(params)

	member, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.MemberResponse{}, err
	}

	s.bus.Publish(ctx, events.MemberUpdated{
		BaseEvent: events.NewBaseEvent(),
		MemberID:  id,
		ChurchID:  churchID,
	})
	return toMemberResponse(member), nil
}

// Delete soft-deletes a member and publishes MemberDeleted.
func (s *Service) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, churchID, id); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.MemberDeleted{
		BaseEvent: events.NewBaseEvent(),
		MemberID:  id,
		ChurchID:  churchID,
	})
	return nil
}

// UpdateTags applies tag additions and removals in one write.
func (s *Service) UpdateTags(ctx context.Context, churchID, id uuid.UUID, req transport.UpdateTagsRequest) (transport.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return transport.MemberResponse{}, err
	}

	tags := mergeTags(member.Tags, normalizeTags(req.Add), normalizeTags(req.Remove))
	if err := s.repo.SetTags(ctx, churchID, id, tags); err != nil {
		return transport.MemberResponse{}, err
	}

	s.bus.Publish(ctx, events.MemberUpdated{
		BaseEvent: events.NewBaseEvent(),
		MemberID:  id,
		ChurchID:  churchID,
	})

	member.Tags = tags
	return toMemberResponse(member), nil
}

// PresignPhotoUpload returns a presigned PUT URL and records the new
// object key on the member.
func (s *Service) PresignPhotoUpload(ctx context.Context, churchID, id uuid.UUID, req transport.PresignPhotoRequest) (*storage.PresignedURL, error) {
	if s.photos == nil {
		return nil, apperr.Validation("photo storage is not configured")
	}

	member, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return nil, err
	}

	presigned, err := s.photos.PresignUpload(ctx, churchID.String(), id.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPhotoKey(ctx, churchID, id, &presigned.ObjectKey); err != nil {
		return nil, err
	}
	if member.PhotoKey != nil {
		if err := s.photos.Remove(ctx, *member.PhotoKey); err != nil {
			s.log.DatabaseError("remove replaced photo", err)
		}
	}
	return presigned, nil
}

// PhotoDownloadURL returns a presigned GET URL for the member's photo.
func (s *Service) PhotoDownloadURL(ctx context.Context, churchID, id uuid.UUID) (*storage.PresignedURL, error) {
	if s.photos == nil {
		return nil, apperr.Validation("photo storage is not configured")
	}

	member, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return nil, err
	}
	if member.PhotoKey == nil {
		return nil, apperr.NotFound("member has no profile photo")
	}
	return s.photos.PresignDownload(ctx, *member.PhotoKey)
}

func (s *Service) clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.GetSearchDefaultPageSize()
	}
	if max := s.cfg.GetSearchMaxPageSize(); pageSize > max {
		pageSize = max
	}
	return page, pageSize
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func normalizePhone(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	normalized := phone.NormalizeE164(trimmed)
	return &normalized
}

func normalizeEmail(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.ToLower(strings.TrimSpace(*value))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeTags lowercases, trims, and deduplicates while keeping the
// caller's order. Tags are stored lowercase so the search engine can
// compare without touching the column.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func mergeTags(current, add, remove []string) []string {
	removed := make(map[string]bool, len(remove))
	for _, t := range remove {
		removed[t] = true
	}

	out := make([]string, 0, len(current)+len(add))
	seen := make(map[string]bool, len(current)+len(add))
	for _, t := range current {
		if removed[t] || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, t := range add {
		if removed[t] || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
