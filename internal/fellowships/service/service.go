// Package service implements fellowship business logic.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/fellowships/repository"
	"membercare_backend/internal/fellowships/transport"
	"membercare_backend/platform/logger"
)

// Service provides business logic for fellowships.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a fellowship service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create inserts a fellowship.
func (s *Service) Create(ctx context.Context, churchID uuid.UUID, req transport.CreateFellowshipRequest) (transport.FellowshipResponse, error) {
	fellowship, err := s.repo.Create(ctx, churchID, strings.TrimSpace(req.Name), req.Description, req.MeetingDay)
	if err != nil {
		return transport.FellowshipResponse{}, err
	}
	return toResponse(fellowship), nil
}

// GetByID retrieves a fellowship.
func (s *Service) GetByID(ctx context.Context, churchID, id uuid.UUID) (transport.FellowshipResponse, error) {
	fellowship, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return transport.FellowshipResponse{}, err
	}
	return toResponse(fellowship), nil
}

// List retrieves every fellowship of the church.
func (s *Service) List(ctx context.Context, churchID uuid.UUID) (transport.FellowshipListResponse, error) {
	fellowships, err := s.repo.List(ctx, churchID)
	if err != nil {
		return transport.FellowshipListResponse{}, err
	}

	items := make([]transport.FellowshipResponse, 0, len(fellowships))
	for _, f := range fellowships {
		items = append(items, toResponse(f))
	}
	return transport.FellowshipListResponse{Items: items, Total: len(items)}, nil
}

// Update merges the request into the stored fellowship.
func (s *Service) Update(ctx context.Context, churchID, id uuid.UUID, req transport.UpdateFellowshipRequest) (transport.FellowshipResponse, error) {
	current, err := s.repo.GetByID(ctx, churchID, id)
	if err != nil {
		return transport.FellowshipResponse{}, err
	}

	name := current.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	description := current.Description
	if req.Description != nil {
		description = req.Description
	}
	meetingDay := current.MeetingDay
	if req.MeetingDay != nil {
		meetingDay = req.MeetingDay
	}

	fellowship, err := s.repo.Update(ctx, churchID, id, name, description, meetingDay)
	if err != nil {
		return transport.FellowshipResponse{}, err
	}
	return toResponse(fellowship), nil
}

// Delete removes a fellowship.
func (s *Service) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	return s.repo.Delete(ctx, churchID, id)
}

// AddMember assigns a member to the fellowship.
func (s *Service) AddMember(ctx context.Context, churchID, id, memberID uuid.UUID) error {
	return s.repo.AddMember(ctx, churchID, id, memberID)
}

// RemoveMember removes an assignment.
func (s *Service) RemoveMember(ctx context.Context, churchID, id, memberID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, churchID, id, memberID)
}

// ListMembers retrieves the fellowship's members.
func (s *Service) ListMembers(ctx context.Context, churchID, id uuid.UUID) (transport.FellowshipMembersResponse, error) {
	if _, err := s.repo.GetByID(ctx, churchID, id); err != nil {
		return transport.FellowshipMembersResponse{}, err
	}

	members, err := s.repo.ListMembers(ctx, churchID, id)
	if err != nil {
		return transport.FellowshipMembersResponse{}, err
	}

	items := make([]transport.FellowshipMemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, transport.FellowshipMemberResponse{
			MemberID:  m.MemberID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			JoinedAt:  m.JoinedAt.Format(time.RFC3339),
		})
	}
	return transport.FellowshipMembersResponse{Items: items, Total: len(items)}, nil
}

func toResponse(f repository.Fellowship) transport.FellowshipResponse {
	return transport.FellowshipResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		MeetingDay:  f.MeetingDay,
		MemberCount: f.MemberCount,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   f.UpdatedAt.Format(time.RFC3339),
	}
}
