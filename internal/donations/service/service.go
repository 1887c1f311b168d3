// Package service implements donation business logic.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"membercare_backend/internal/donations/repository"
	"membercare_backend/internal/donations/transport"
	"membercare_backend/platform/logger"
)

const (
	dateLayout      = "2006-01-02"
	defaultCurrency = "GHS"
)

// Service provides business logic for donations.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a donation service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record stores a donation. DonatedAt defaults to today.
func (s *Service) Record(ctx context.Context, churchID uuid.UUID, req transport.RecordDonationRequest) (transport.DonationResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	donatedAt := time.Now()
	if req.DonatedAt != "" {
		// Validated by the datetime struct tag.
		donatedAt, _ = time.Parse(dateLayout, req.DonatedAt)
	}

	donation, err := s.repo.Record(ctx, repository.RecordParams{
		ChurchID:    churchID,
		MemberID:    req.MemberID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		DonatedAt:   donatedAt,
		Note:        req.Note,
	})
	if err != nil {
		return transport.DonationResponse{}, err
	}
	return toResponse(donation), nil
}

// List retrieves a filtered donation page.
func (s *Service) List(ctx context.Context, churchID uuid.UUID, req transport.ListDonationsRequest) (transport.DonationListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	params := repository.ListParams{
		ChurchID: churchID,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	}
	if req.MemberID != "" {
		memberID, err := uuid.Parse(req.MemberID)
		if err == nil {
			params.MemberID = &memberID
		}
	}
	if req.From != "" {
		if from, err := time.Parse(dateLayout, req.From); err == nil {
			params.From = &from
		}
	}
	if req.To != "" {
		if to, err := time.Parse(dateLayout, req.To); err == nil {
			params.To = &to
		}
	}

	donations, total, totalCents, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.DonationListResponse{}, err
	}

	items := make([]transport.DonationResponse, 0, len(donations))
	for _, d := range donations {
		items = append(items, toResponse(d))
	}
	return transport.DonationListResponse{
		Items:      items,
		Total:      total,
		TotalCents: totalCents,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func toResponse(d repository.Donation) transport.DonationResponse {
	return transport.DonationResponse{
		ID:          d.ID,
		MemberID:    d.MemberID,
		AmountCents: d.AmountCents,
		Currency:    d.Currency,
		DonatedAt:   d.DonatedAt.Format(dateLayout),
		Note:        d.Note,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
