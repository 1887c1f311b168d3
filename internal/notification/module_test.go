package notification

import (
	"context"
	"testing"

	"membercare_backend/internal/events"
	"membercare_backend/platform/logger"

	"github.com/google/uuid"
)

type sentMail struct {
	to      string
	kind    string
	church  string
	display string
}

type fakeSender struct {
	sent []sentMail
}

func (f *fakeSender) SendChurchWelcomeEmail(_ context.Context, toEmail, adminName, churchName string) error {
	f.sent = append(f.sent, sentMail{to: toEmail, kind: "church_welcome", church: churchName, display: adminName})
	return nil
}

func (f *fakeSender) SendMemberWelcomeEmail(_ context.Context, toEmail, memberName, churchName string) error {
	f.sent = append(f.sent, sentMail{to: toEmail, kind: "member_welcome", church: churchName, display: memberName})
	return nil
}

func (f *fakeSender) SendCustomEmail(_ context.Context, toEmail, subject, htmlContent string) error {
	f.sent = append(f.sent, sentMail{to: toEmail, kind: "custom"})
	return nil
}

type fakeChurchReader struct {
	name string
}

func (f fakeChurchReader) ChurchName(context.Context, uuid.UUID) (string, error) {
	return f.name, nil
}

func TestMemberCreatedSendsWelcome(t *testing.T) {
	sender := &fakeSender{}
	mod := NewModule(sender, fakeChurchReader{name: "Grace Chapel"}, logger.New("test"))

	err := mod.Handle(context.Background(), events.MemberCreated{
		BaseEvent: events.NewBaseEvent(),
		MemberID:  uuid.New(),
		ChurchID:  uuid.New(),
		FirstName: "Kofi",
		LastName:  "Boateng",
		Email:     "kofi@example.org",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	mail := sender.sent[0]
	if mail.kind != "member_welcome" || mail.to != "kofi@example.org" {
		t.Fatalf("unexpected email %+v", mail)
	}
	if mail.church != "Grace Chapel" || mail.display != "Kofi" {
		t.Fatalf("unexpected email copy %+v", mail)
	}
}

func TestMemberCreatedWithoutEmailIsSkipped(t *testing.T) {
	sender := &fakeSender{}
	mod := NewModule(sender, fakeChurchReader{name: "Grace Chapel"}, logger.New("test"))

	err := mod.Handle(context.Background(), events.MemberCreated{
		BaseEvent: events.NewBaseEvent(),
		MemberID:  uuid.New(),
		ChurchID:  uuid.New(),
		FirstName: "Ama",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.sent))
	}
}

func TestChurchRegisteredSendsWelcome(t *testing.T) {
	sender := &fakeSender{}
	mod := NewModule(sender, fakeChurchReader{}, logger.New("test"))

	err := mod.Handle(context.Background(), events.ChurchRegistered{
		BaseEvent:  events.NewBaseEvent(),
		ChurchID:   uuid.New(),
		Name:       "Hope Assembly",
		AdminEmail: "admin@hope.org",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "church_welcome" {
		t.Fatalf("expected a church welcome email, got %+v", sender.sent)
	}
}
