package transport

import "github.com/google/uuid"

type CreateFellowshipRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	MeetingDay  *string `json:"meetingDay,omitempty" validate:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
}

type UpdateFellowshipRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	MeetingDay  *string `json:"meetingDay,omitempty" validate:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
}

type FellowshipResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	MeetingDay  *string   `json:"meetingDay,omitempty"`
	MemberCount int64     `json:"memberCount"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type FellowshipListResponse struct {
	Items []FellowshipResponse `json:"items"`
	Total int                  `json:"total"`
}

type FellowshipMemberResponse struct {
	MemberID  uuid.UUID `json:"memberId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	JoinedAt  string    `json:"joinedAt"`
}

type FellowshipMembersResponse struct {
	Items []FellowshipMemberResponse `json:"items"`
	Total int                        `json:"total"`
}
