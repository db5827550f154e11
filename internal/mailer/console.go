package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ConsoleMailer writes codes to the log instead of sending them. It is meant for local
// development.
type ConsoleMailer struct {
	logger *zap.Logger
}

// NewConsoleMailer returns a mailer that only logs.
func NewConsoleMailer(logger *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

// SendVerificationCode logs the code instead of mailing it.
func (m *ConsoleMailer) SendVerificationCode(_ context.Context, to, code string, ttl time.Duration) error {
	m.logger.Info("verification code",
		zap.String("to", to),
		zap.String("code", code),
		zap.Duration("expiresIn", ttl),
	)
	return nil
}
