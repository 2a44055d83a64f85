package inbox

import (
	"net/mail"
	"strings"
	"time"

	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// Status is the admin triage state of a contact message
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusNew || s == StatusRead || s == StatusArchived
}

const (
	maxNameLen    = 100
	maxSubjectLen = 200
	maxMessageLen = 5000
	maxEmailLen   = 254
)

// ContactMessage is a message sent through the public contact form
type ContactMessage struct {
	shared.BaseAggregateRoot
	Name    string
	Email   string
	Subject string
	Message string
	Status  Status
}

// NewContactMessage validates a contact form submission
func NewContactMessage(name, email, subject, message string) (*ContactMessage, error) {
	name = membership.NormalizeName(name)
	if n := membership.RuneLen(name); n < 1 || n > maxNameLen {
		return nil, shared.NewInvalidInputError("name must be 1 to 100 characters")
	}
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || len(email) > maxEmailLen {
		return nil, shared.NewInvalidInputError("email is not a valid address")
	}
	subject = strings.TrimSpace(subject)
	if n := membership.RuneLen(subject); n < 1 || n > maxSubjectLen {
		return nil, shared.NewInvalidInputError("subject must be 1 to 200 characters")
	}
	message = strings.TrimSpace(message)
	if n := membership.RuneLen(message); n < 1 || n > maxMessageLen {
		return nil, shared.NewInvalidInputError("message must be 1 to 5000 characters")
	}

	m := &ContactMessage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(email),
		Subject:           subject,
		Message:           message,
		Status:            StatusNew,
	}
	m.Record(NewMessageReceivedEvent(m))
	return m, nil
}

// SetStatus moves the message between triage states
func (m *ContactMessage) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewInvalidInputError("unknown status %q", status)
	}
	m.Status = status
	m.Touch()
	return nil
}

// ExpiredBefore reports archived messages last touched before cutoff
func (m *ContactMessage) ExpiredBefore(cutoff time.Time) bool {
	return m.Status == StatusArchived && m.UpdatedAt.Before(cutoff)
}
