// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"membercare_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// ChurchRegistered is published when a new church tenant registers.
type ChurchRegistered struct {
	BaseEvent
	ChurchID    uuid.UUID `json:"churchId"`
	Name        string    `json:"name"`
	AdminUserID uuid.UUID `json:"adminUserId"`
	AdminEmail  string    `json:"adminEmail"`
}

func (e ChurchRegistered) EventName() string { return "churches.church.registered" }

// MemberCreated is published when a member record is created.
type MemberCreated struct {
	BaseEvent
	MemberID  uuid.UUID `json:"memberId"`
	ChurchID  uuid.UUID `json:"churchId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
}

func (e MemberCreated) EventName() string { return "members.member.created" }

// MemberUpdated is published after any member profile mutation,
// including tag changes.
type MemberUpdated struct {
	BaseEvent
	MemberID uuid.UUID `json:"memberId"`
	ChurchID uuid.UUID `json:"churchId"`
}

func (e MemberUpdated) EventName() string { return "members.member.updated" }

// MemberDeleted is published when a member is soft-deleted.
type MemberDeleted struct {
	BaseEvent
	MemberID uuid.UUID `json:"memberId"`
	ChurchID uuid.UUID `json:"churchId"`
}

func (e MemberDeleted) EventName() string { return "members.member.deleted" }
