package inbox

import "github.com/state244/hub/internal/domain/shared"

const (
	AggregateTypeContactMessage = "ContactMessage"

	EventContactReceived = "contact.received"
)

// MessageReceivedEvent notifies admins about a new contact message
type MessageReceivedEvent struct {
	shared.BaseDomainEvent
	Subject string `json:"subject"`
}

// NewMessageReceivedEvent builds an admin-only event
func NewMessageReceivedEvent(m *ContactMessage) *MessageReceivedEvent {
	return &MessageReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContactReceived, AggregateTypeContactMessage, m.ID, shared.AudienceAdmins, nil),
		Subject:         m.Subject,
	}
}
