// Package email sends hub notifications over SMTP.
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/domain/recruitment"
	"github.com/state244/hub/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier is every notification the hub sends
type Notifier interface {
	NotifyContactMessage(ctx context.Context, to []string, m *inbox.ContactMessage) error
	NotifyApplicationDecision(ctx context.Context, to string, app *recruitment.Application, allianceName string) error
}

// SMTPNotifier delivers notifications through an SMTP relay
type SMTPNotifier struct {
	from    string
	baseURL string
	send    func(msgs ...*gomail.Message) error
}

// NewSMTPNotifier creates a notifier for cfg. baseURL is the public site used in links.
func NewSMTPNotifier(cfg config.EmailConfig, baseURL string) *SMTPNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	m := gomail.NewMessage()
	return &SMTPNotifier{
		from:    m.FormatAddress(cfg.FromAddress, cfg.FromName),
		baseURL: strings.TrimRight(baseURL, "/"),
		send:    dialer.DialAndSend,
	}
}

// NotifyContactMessage tells admins about a new contact form submission
func (n *SMTPNotifier) NotifyContactMessage(_ context.Context, to []string, m *inbox.ContactMessage) error {
	if len(to) == 0 {
		return nil
	}
	subject := "New contact message: " + m.Subject
	plain := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s\n\nOpen the inbox: %s/admin/messages\n",
		m.Name, m.Email, m.Subject, m.Message, n.baseURL)
	body := fmt.Sprintf(`<html><body>
<h2>New contact message</h2>
<p><strong>From:</strong> %s &lt;%s&gt;</p>
<p><strong>Subject:</strong> %s</p>
<pre style="white-space:pre-wrap">%s</pre>
<p><a href="%s/admin/messages">Open the inbox</a></p>
</body></html>`,
		html.EscapeString(m.Name), html.EscapeString(m.Email), html.EscapeString(m.Subject),
		html.EscapeString(m.Message), n.baseURL)

	msg := n.newMessage(subject, plain, body)
	msg.SetHeader("To", to...)
	msg.SetHeader("Reply-To", m.Email)
	if err := n.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NotifyApplicationDecision tells an applicant the final outcome
func (n *SMTPNotifier) NotifyApplicationDecision(_ context.Context, to string, app *recruitment.Application, allianceName string) error {
	var subject, outcome string
	switch app.Status {
	case recruitment.StatusPresidentApproved:
		subject = "Your migration application was approved"
		outcome = fmt.Sprintf("Welcome to State 244! Your application to join %s has been approved.", allianceName)
	case recruitment.StatusRejected:
		subject = "Your migration application was declined"
		outcome = fmt.Sprintf("Your application to join %s was not accepted.", allianceName)
		if app.RejectionReason != "" {
			outcome += " Reason: " + app.RejectionReason
		}
	default:
		return nil
	}

	plain := fmt.Sprintf("Hello %s,\n\n%s\n\nState 244 Hub\n", app.PlayerName, outcome)
	body := fmt.Sprintf("<html><body><p>Hello %s,</p><p>%s</p><p>State 244 Hub</p></body></html>",
		html.EscapeString(app.PlayerName), html.EscapeString(outcome))

	msg := n.newMessage(subject, plain, body)
	msg.SetHeader("To", to)
	if err := n.send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) newMessage(subject, plain, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", htmlBody)
	return m
}

// LogNotifier records notifications in the log when SMTP is not configured
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyContactMessage implements Notifier
func (n *LogNotifier) NotifyContactMessage(_ context.Context, to []string, m *inbox.ContactMessage) error {
	n.logger.Info("Email disabled; contact notification skipped",
		zap.Strings("to", to), zap.String("message_id", m.ID.String()))
	return nil
}

// NotifyApplicationDecision implements Notifier
func (n *LogNotifier) NotifyApplicationDecision(_ context.Context, to string, app *recruitment.Application, _ string) error {
	n.logger.Info("Email disabled; decision notification skipped",
		zap.String("to", to), zap.String("application_id", app.ID.String()), zap.String("status", string(app.Status)))
	return nil
}
