package email

import (
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

const TOKEN = user.PasswordResetToken("claim.ts.mac")

var (
	BASE_URL = url.URL{Scheme: "https", Host: "blogify.test", Path: "/auth/password_reset"}
	USER     = user.User{ID: 1, Username: "john", Email: "john@test.test"}
)

func TestPasswordResetMessage(t *testing.T) {
	msg, err := NewPasswordResetMessage(BASE_URL, USER, TOKEN)

	require.NoError(t, err)
	require.Equal(t, "john@test.test", msg.To)
	require.Equal(t, PASSWORD_RESET_SUBJECT, msg.Subject)
	require.Contains(t, msg.Body, "https://blogify.test/auth/password_reset/claim.ts.mac\n")
}

type sesClientMock struct {
	mock.Mock
}

func (m *sesClientMock) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	args := m.Called(params)
	return &ses.SendEmailOutput{}, args.Error(0)
}

func (m *sesClientMock) SendTemplatedEmail(
	ctx context.Context,
	params *ses.SendTemplatedEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendTemplatedEmailOutput, error) {
	args := m.Called(params)
	return &ses.SendTemplatedEmailOutput{}, args.Error(0)
}

func TestSESTemplatedEmail(t *testing.T) {
	client := new(sesClientMock)
	client.On("SendTemplatedEmail", mock.MatchedBy(func(in *ses.SendTemplatedEmailInput) bool {
		var params map[string]string
		if err := json.Unmarshal([]byte(*in.TemplateData), &params); err != nil {
			return false
		}
		return *in.Source == "noreply@blogify.test" &&
			*in.Template == "password-reset" &&
			in.Destination.ToAddresses[0] == "john@test.test" &&
			params["passwordResetUrl"] == "https://blogify.test/auth/password_reset/claim.ts.mac"
	})).Return(nil)
	sender := &SESSender{
		ses:                   client,
		sender:                "noreply@blogify.test",
		passwordResetTemplate: "password-reset",
		passwordResetBaseURL:  BASE_URL,
	}

	require.NoError(t, sender.SendPasswordResetToken(context.Background(), USER, TOKEN))
	client.AssertExpectations(t)
}

func TestSESPlainEmail(t *testing.T) {
	client := new(sesClientMock)
	client.On("SendEmail", mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return *in.Message.Subject.Data == PASSWORD_RESET_SUBJECT
	})).Return(errors.New("throttled"))
	sender := &SESSender{ses: client, sender: "noreply@blogify.test", passwordResetBaseURL: BASE_URL}

	require.EqualError(t, sender.SendPasswordResetToken(context.Background(), USER, TOKEN), "throttled")
	client.AssertNotCalled(t, "SendTemplatedEmail", mock.Anything)
}

func TestSESRequiresEmail(t *testing.T) {
	sender := &SESSender{ses: new(sesClientMock), passwordResetBaseURL: BASE_URL}
	require.Error(t, sender.SendPasswordResetToken(context.Background(), user.User{ID: 1}, TOKEN))
}

type fakeDialer struct {
	failures int
	sent     []*gomail.Message
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.failures > 0 {
		d.failures--
		return errors.New("connection refused")
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestSMTPSender(d *fakeDialer, log logging.Logger) *SMTPSender {
	return &SMTPSender{
		log:                  log,
		dialer:               d,
		sender:               "noreply@blogify.test",
		passwordResetBaseURL: BASE_URL,
		backoff:              time.Millisecond,
	}
}

func TestSMTPRetriesUntilSent(t *testing.T) {
	d := &fakeDialer{failures: 2}
	log := logging.NewFakeLogger()

	err := newTestSMTPSender(d, log).SendPasswordResetToken(context.Background(), USER, TOKEN)

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	require.Equal(t, []string{"john@test.test"}, d.sent[0].GetHeader("To"))
	require.Equal(t, []string{PASSWORD_RESET_SUBJECT}, d.sent[0].GetHeader("Subject"))
	require.Equal(t, 2, log.CountByLevel(logging.WARNING))
}

func TestSMTPGivesUp(t *testing.T) {
	d := &fakeDialer{failures: maxRetries}

	err := newTestSMTPSender(d, logging.NewFakeLogger()).SendPasswordResetToken(context.Background(), USER, TOKEN)

	require.ErrorContains(t, err, "connection refused")
	require.Empty(t, d.sent)
}

func TestLogSender(t *testing.T) {
	log := logging.NewFakeLogger()

	err := NewLogSender(log, BASE_URL).SendPasswordResetToken(context.Background(), USER, TOKEN)

	require.NoError(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.INFO))
}
