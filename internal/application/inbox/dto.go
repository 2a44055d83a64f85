package inbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/inbox"
)

// SubmitInput is a contact form submission
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ListInput filters the admin inbox
type ListInput struct {
	Page     int
	PageSize int
	Status   string
	Keyword  string
	OrderBy  string
	OrderDir string
}

// MessageResponse is a contact message as shown to admins
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToMessageResponse converts a domain ContactMessage to MessageResponse
func ToMessageResponse(m *inbox.ContactMessage) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
