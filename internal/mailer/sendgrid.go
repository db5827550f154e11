package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const senderName = "StaffSync"

type sendFunc func(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error)

// SendGridMailer sends verification codes through the SendGrid v3 API.
type SendGridMailer struct {
	from   string
	send   sendFunc
	logger *zap.Logger
}

// NewSendGridMailer returns a mailer that sends from the given address.
func NewSendGridMailer(apiKey, from string, logger *zap.Logger) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is empty")
	}
	if from == "" {
		return nil, errors.New("from address is empty")
	}
	client := sendgrid.NewSendClient(apiKey)
	return &SendGridMailer{
		from:   from,
		send:   client.SendWithContext,
		logger: logger,
	}, nil
}

// SendVerificationCode mails the code through SendGrid.
func (m *SendGridMailer) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("to address is empty")
	}

	body := verificationBody(code, ttl)
	message := mail.NewSingleEmail(
		mail.NewEmail(senderName, m.from),
		verificationSubject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	response, err := m.send(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	m.logger.Debug("verification mail sent", zap.String("to", to), zap.Int("status", response.StatusCode))
	return nil
}
