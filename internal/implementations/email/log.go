package email

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"context"
	"net/url"
)

// LogSender writes reset emails to the log instead of delivering them.
type LogSender struct {
	log                  logging.Logger
	passwordResetBaseURL url.URL
}

func NewLogSender(log logging.Logger, passwordResetBaseURL url.URL) *LogSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LogSender{log: log, passwordResetBaseURL: passwordResetBaseURL}
}

func (s *LogSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	msg, err := NewPasswordResetMessage(s.passwordResetBaseURL, u, token)
	if err != nil {
		return err
	}
	s.log.Info(
		ctx,
		"Password reset email.",
		logging.Entry("to", msg.To),
		logging.Entry("subject", msg.Subject),
		logging.Entry("body", msg.Body),
	)
	return nil
}
