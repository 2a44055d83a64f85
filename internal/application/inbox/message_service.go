package inbox

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ContactNotifier forwards new contact messages to the admin inbox
type ContactNotifier interface {
	NotifyContactMessage(ctx context.Context, to []string, m *inbox.ContactMessage) error
}

// MessageService handles the public contact form and the admin inbox
type MessageService struct {
	messages   inbox.MessageRepository
	profiles   membership.ProfileRepository
	notifier   ContactNotifier
	publisher  shared.EventPublisher
	adminInbox []string
	logger     *zap.Logger
	metrics    *telemetry.BusinessMetrics
}

// NewMessageService creates a new MessageService. adminInbox is added to
// the admin profile emails when notifying.
func NewMessageService(
	messages inbox.MessageRepository,
	profiles membership.ProfileRepository,
	notifier ContactNotifier,
	publisher shared.EventPublisher,
	adminInbox []string,
	logger *zap.Logger,
) *MessageService {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &MessageService{
		messages:   messages,
		profiles:   profiles,
		notifier:   notifier,
		publisher:  publisher,
		adminInbox: adminInbox,
		logger:     logger,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *MessageService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

// Submit stores a contact message and notifies admins. Notification
// failures never fail the submission.
func (s *MessageService) Submit(ctx context.Context, in SubmitInput) (*MessageResponse, error) {
	m, err := inbox.NewContactMessage(in.Name, in.Email, in.Subject, in.Message)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	s.metrics.ContactReceived()
	if err := shared.PublishPending(ctx, s.publisher, m); err != nil {
		s.logger.Warn("Failed to publish contact event", zap.String("message_id", m.ID.String()), zap.Error(err))
	}
	s.notify(ctx, m)

	resp := ToMessageResponse(m)
	return &resp, nil
}

func (s *MessageService) notify(ctx context.Context, m *inbox.ContactMessage) {
	if s.notifier == nil {
		return
	}
	recipients := s.recipients(ctx)
	if len(recipients) == 0 {
		s.logger.Debug("No admin recipients for contact message", zap.String("message_id", m.ID.String()))
		return
	}
	if err := s.notifier.NotifyContactMessage(ctx, recipients, m); err != nil {
		s.logger.Warn("Failed to notify admins", zap.String("message_id", m.ID.String()), zap.Error(err))
	}
}

// recipients merges the configured inbox with admin profile emails, case-insensitively deduplicated
func (s *MessageService) recipients(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(addr string) {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}

	for _, a := range s.adminInbox {
		add(a)
	}
	emails, err := s.profiles.Emails(ctx, membership.RoleAdmin)
	if err != nil {
		s.logger.Warn("Failed to load admin emails", zap.Error(err))
	}
	for _, a := range emails {
		add(a)
	}
	return out
}

// List returns the admin inbox, newest first unless asked otherwise
func (s *MessageService) List(ctx context.Context, in ListInput) (shared.Paginated[MessageResponse], error) {
	var empty shared.Paginated[MessageResponse]

	filter := inbox.MessageFilter{
		Filter: shared.Filter{
			Page:     in.Page,
			PageSize: in.PageSize,
			Keyword:  in.Keyword,
			OrderBy:  in.OrderBy,
			OrderDir: in.OrderDir,
		}.Normalize(),
	}
	if in.Status != "" {
		status := inbox.Status(in.Status)
		if !status.IsValid() {
			return empty, shared.NewInvalidInputError("unknown status %q", in.Status)
		}
		filter.Status = &status
	}

	msgs, total, err := s.messages.FindAll(ctx, filter)
	if err != nil {
		return empty, err
	}
	items := make([]MessageResponse, len(msgs))
	for i, m := range msgs {
		items[i] = ToMessageResponse(m)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one message
func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (*MessageResponse, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMessageResponse(m)
	return &resp, nil
}

// UpdateStatus moves a message between new, read and archived
func (s *MessageService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*MessageResponse, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.SetStatus(inbox.Status(status)); err != nil {
		return nil, err
	}
	if err := s.messages.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMessageResponse(m)
	return &resp, nil
}

// Delete removes a message
func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.messages.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Contact message deleted", zap.String("message_id", id.String()))
	return nil
}

// UnreadCount is the number of messages still in the new state
func (s *MessageService) UnreadCount(ctx context.Context) (int64, error) {
	return s.messages.CountByStatus(ctx, inbox.StatusNew)
}
