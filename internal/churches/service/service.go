// Package service implements church profile operations.
package service

import (
	"context"
	"strings"
	"time"

	"membercare_backend/internal/churches/repository"
	"membercare_backend/internal/churches/transport"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the calling tenant's church profile.
func (s *Service) Get(ctx context.Context, churchID uuid.UUID) (transport.ChurchResponse, error) {
	church, err := s.repo.GetByID(ctx, churchID)
	if err != nil {
		return transport.ChurchResponse{}, err
	}
	return toChurchResponse(church), nil
}

// Update replaces the tenant's church profile.
func (s *Service) Update(ctx context.Context, churchID uuid.UUID, req transport.UpdateChurchRequest) (transport.ChurchResponse, error) {
	church, err := s.repo.Update(ctx, churchID, repository.UpdateChurchParams{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Country: strings.ToUpper(strings.TrimSpace(req.Country)),
		Address: req.Address,
		Website: req.Website,
	})
	if err != nil {
		return transport.ChurchResponse{}, err
	}
	return toChurchResponse(church), nil
}

func toChurchResponse(church repository.Church) transport.ChurchResponse {
	return transport.ChurchResponse{
		ID:        church.ID.String(),
		Name:      church.Name,
		Email:     church.Email,
		Phone:     church.Phone,
		Country:   church.Country,
		Address:   church.Address,
		Website:   church.Website,
		CreatedAt: church.CreatedAt.Format(time.RFC3339),
		UpdatedAt: church.UpdatedAt.Format(time.RFC3339),
	}
}
