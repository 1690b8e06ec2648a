package email

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"gopkg.in/gomail.v2"
)

const (
	maxRetries  = 3
	baseBackoff = time.Second
	maxBackoff  = 6 * time.Second
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

type SMTPSender struct {
	log                  logging.Logger
	dialer               dialer
	sender               string
	passwordResetBaseURL url.URL
	backoff              time.Duration
}

func NewSMTPSender(
	log logging.Logger,
	config SMTPConfig,
	sender string,
	passwordResetBaseURL url.URL,
) *SMTPSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: config.Host, MinVersion: tls.VersionTLS12}
	}
	return &SMTPSender{
		log:                  log,
		dialer:               d,
		sender:               sender,
		passwordResetBaseURL: passwordResetBaseURL,
		backoff:              baseBackoff,
	}
}

func (s *SMTPSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	msg, err := NewPasswordResetMessage(s.passwordResetBaseURL, u, token)
	if err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	return s.sendWithRetry(ctx, m)
}

func (s *SMTPSender) sendWithRetry(ctx context.Context, m *gomail.Message) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := s.dialer.DialAndSend(m)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries-1 {
			break
		}

		backoff := s.backoff << i
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		s.log.Warning(
			ctx,
			"Could not send email, retrying.",
			logging.Entry("attempt", i+1),
			logging.Entry("backoff", backoff),
			logging.Entry("err", err),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("could not send email after %d attempts: %w", maxRetries, lastErr)
}
