package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Attachment is a file attached to an outgoing mail.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outgoing mail.
type Message struct {
	FromName    string
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// SendGridClient implements EmailClient interface
type SendGridClient struct {
	apiKey string
}

func NewSendGridClient(apiKey string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey}
}

// Send sends an email using SendGrid
func (c *SendGridClient) Send(ctx context.Context, m Message) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.From == "" {
		return fmt.Errorf("from address is empty")
	}
	if m.To == "" {
		return fmt.Errorf("to address is empty")
	}

	message := buildSendGridMessage(m)

	// Create client
	client := sendgrid.NewSendClient(c.apiKey)

	// Send email
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf(
			"sendgrid send failed: status=%d, body=%s",
			response.StatusCode,
			response.Body,
		)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s subject=%s",
		response.StatusCode, m.To, m.Subject)

	return nil
}

func buildSendGridMessage(m Message) *mail.SGMailV3 {
	fromName := m.FromName
	if fromName == "" {
		fromName = "VerseOne"
	}
	fromEmail := mail.NewEmail(fromName, m.From)
	toEmail := mail.NewEmail("", m.To)

	// Text & HTML: HTML は最低限整形
	htmlContent := fmt.Sprintf("<pre>%s</pre>", m.Body)

	message := mail.NewSingleEmail(fromEmail, m.Subject, toEmail, m.Body, htmlContent)

	for _, a := range m.Attachments {
		att := mail.NewAttachment()
		att.SetFilename(a.Filename)
		att.SetType(a.ContentType)
		att.SetDisposition("attachment")
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		message.AddAttachment(att)
	}
	return message
}
