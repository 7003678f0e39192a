package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is the provider-neutral email shape the services work with; the
// SendGrid specifics stay behind this package boundary.
type Message struct {
	To          string
	Subject     string
	Content     string
	HTMLContent string
}

type EmailService interface {
	Send(ctx context.Context, msg *Message) error
	SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// GetSendGridClient exposes the underlying client so tests can point it at
// a local server.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

func (e *emailService) Send(ctx context.Context, msg *Message) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", msg.To)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = msg.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", msg.Content))

	if msg.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func (e *emailService) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {

	msg := &Message{
		To:      to,
		Subject: "Verify your email address",
		Content: fmt.Sprintf(
			"Hi %s,\n\nPlease confirm your email address by visiting the link below:\n\n%s\n\nIf you did not create an account, you can ignore this message.\n",
			name, verifyURL),
		HTMLContent: fmt.Sprintf(
			`<p>Hi %s,</p><p>Please confirm your email address by clicking <a href="%s">this link</a>.</p><p>If you did not create an account, you can ignore this message.</p>`,
			name, verifyURL),
	}

	return e.Send(ctx, msg)
}
