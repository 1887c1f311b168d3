package transport

import "github.com/google/uuid"

type RecordDonationRequest struct {
	MemberID    uuid.UUID `json:"memberId" validate:"required"`
	AmountCents int64     `json:"amountCents" validate:"required,min=1"`
	Currency    string    `json:"currency" validate:"omitempty,len=3,uppercase"`
	DonatedAt   string    `json:"donatedAt" validate:"omitempty,datetime=2006-01-02"`
	Note        *string   `json:"note,omitempty" validate:"omitempty,max=500"`
}

type ListDonationsRequest struct {
	MemberID string `form:"memberId" validate:"omitempty,uuid"`
	From     string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type DonationResponse struct {
	ID          uuid.UUID `json:"id"`
	MemberID    uuid.UUID `json:"memberId"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	DonatedAt   string    `json:"donatedAt"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

type DonationListResponse struct {
	Items      []DonationResponse `json:"items"`
	Total      int64              `json:"total"`
	TotalCents int64              `json:"totalCents"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}
