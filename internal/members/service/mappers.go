package service

import (
	"time"

	"membercare_backend/internal/members/repository"
	"membercare_backend/internal/members/transport"
)

func toMemberResponse(m repository.Member) transport.MemberResponse {
	resp := transport.MemberResponse{
		ID:                  m.ID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		PhoneNumber:         m.PhoneNumber,
		Email:               m.Email,
		Sex:                 m.Sex,
		MaritalStatus:       m.MaritalStatus,
		Status:              m.Status,
		IsVerified:          m.IsVerified,
		ProfileCompleteness: m.ProfileCompleteness,
		Tags:                m.Tags,
		City:                m.City,
		Suburb:              m.Suburb,
		Region:              m.Region,
		Country:             m.Country,
		HasPhoto:            m.PhotoKey != nil,
		CreatedAt:           m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           m.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if m.DateOfBirth != nil {
		d := m.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &d
	}
	if m.MemberSince != nil {
		d := m.MemberSince.Format(dateLayout)
		resp.MemberSince = &d
	}
	return resp
}

func toMemberListResponse(members []repository.Member, total int64, page, pageSize int) transport.MemberListResponse {
	items := make([]transport.MemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toMemberResponse(m))
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return transport.MemberListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
