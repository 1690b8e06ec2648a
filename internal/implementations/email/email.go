package email

import (
	"blogify/internal/core/domain/user"
	"bytes"
	"net/url"
	"text/template"
)

const PASSWORD_RESET_SUBJECT = "Password Reset Request"

var passwordResetBody = template.Must(template.New("password_reset").Parse(
	`To reset your password visit the following link:
{{ .PasswordResetURL }}

If you did not make this request, simply ignore this email, and
no changes will be made to your account.
`))

type Message struct {
	To      string
	Subject string
	Body    string
}

type passwordResetParams struct {
	Username         string `json:"username"`
	PasswordResetURL string `json:"passwordResetUrl"`
}

func newPasswordResetParams(baseURL url.URL, u user.User, token user.PasswordResetToken) passwordResetParams {
	return passwordResetParams{
		Username:         string(u.Username),
		PasswordResetURL: baseURL.JoinPath(string(token)).String(),
	}
}

// NewPasswordResetMessage renders the plain text reset email for u.
func NewPasswordResetMessage(baseURL url.URL, u user.User, token user.PasswordResetToken) (Message, error) {
	var body bytes.Buffer
	if err := passwordResetBody.Execute(&body, newPasswordResetParams(baseURL, u, token)); err != nil {
		return Message{}, err
	}
	return Message{
		To:      string(u.Email),
		Subject: PASSWORD_RESET_SUBJECT,
		Body:    body.String(),
	}, nil
}
