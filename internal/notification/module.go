// Package notification sends welcome emails in response to domain events.
// Domain modules publish events and never talk to email providers directly.
package notification

import (
	"context"

	"membercare_backend/internal/email"
	"membercare_backend/internal/events"
	"membercare_backend/platform/logger"

	"github.com/google/uuid"
)

// ChurchNameReader resolves a church's display name for email copy.
type ChurchNameReader interface {
	ChurchName(ctx context.Context, churchID uuid.UUID) (string, error)
}

// Module subscribes to domain events and fans them out as emails.
type Module struct {
	mail     email.Sender
	churches ChurchNameReader
	log      *logger.Logger
}

// NewModule creates the notification module.
func NewModule(mail email.Sender, churches ChurchNameReader, log *logger.Logger) *Module {
	return &Module{mail: mail, churches: churches, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ChurchRegistered{}.EventName(), m)
	bus.Subscribe(events.MemberCreated{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ChurchRegistered:
		return m.handleChurchRegistered(ctx, e)
	case events.MemberCreated:
		return m.handleMemberCreated(ctx, e)
	}
	return nil
}

func (m *Module) handleChurchRegistered(ctx context.Context, e events.ChurchRegistered) error {
	if err := m.mail.SendChurchWelcomeEmail(ctx, e.AdminEmail, e.AdminEmail, e.Name); err != nil {
		m.log.EmailDeliveryFailed(e.AdminEmail, "church_welcome", err)
	}
	return nil
}

func (m *Module) handleMemberCreated(ctx context.Context, e events.MemberCreated) error {
	if e.Email == "" {
		return nil
	}

	churchName, err := m.churches.ChurchName(ctx, e.ChurchID)
	if err != nil {
		m.log.EmailDeliveryFailed(e.Email, "member_welcome", err)
		return nil
	}

	name := e.FirstName
	if name == "" {
		name = e.LastName
	}
	if err := m.mail.SendMemberWelcomeEmail(ctx, e.Email, name, churchName); err != nil {
		m.log.EmailDeliveryFailed(e.Email, "member_welcome", err)
	}
	return nil
}
