package sendgrid

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const defaultHost = "https://api.sendgrid.com"

// EmailSender delivers plain-text email through the SendGrid v3 API.
type EmailSender struct {
	apiKey    string
	host      string
	fromName  string
	fromEmail string
}

// NewEmailSender accepts the sender as "Name <address>" or a bare address.
func NewEmailSender(apiKey, sender, host string) (*EmailSender, error) {
	addr, err := netmail.ParseAddress(strings.TrimSpace(sender))
	if err != nil {
		return nil, fmt.Errorf("parse sendgrid sender %q: %w", sender, err)
	}
	if strings.TrimSpace(host) == "" {
		host = defaultHost
	}
	return &EmailSender{
		apiKey:    strings.TrimSpace(apiKey),
		host:      strings.TrimRight(host, "/"),
		fromName:  addr.Name,
		fromEmail: addr.Address,
	}, nil
}

func (s *EmailSender) SendEmail(ctx context.Context, to, subject, text string) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, text, "")

	request := sg.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	response, err := sg.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("send email via sendgrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Info("sendgrid email accepted", logger.Fields{
		"status":  response.StatusCode,
		"subject": subject,
	})
	return nil
}
