package email

import (
	"blogify/internal/core/domain/user"
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type SESSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender string
	// Optional SES template, the plain text body is sent when it is empty.
	passwordResetTemplate string
	passwordResetBaseURL  url.URL
}

func NewSESSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseURL url.URL,
) *SESSender {
	return &SESSender{
		ses:                   ses.NewFromConfig(awsConfig),
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseURL:  passwordResetBaseURL,
	}
}

func (s *SESSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}
	destination := &types.Destination{
		CcAddresses: []string{},
		ToAddresses: []string{string(u.Email)},
	}

	if s.passwordResetTemplate != "" {
		templateParamsBytes, err := json.Marshal(newPasswordResetParams(s.passwordResetBaseURL, u, token))
		if err != nil {
			return err
		}
		_, err = s.ses.SendTemplatedEmail(
			ctx,
			&ses.SendTemplatedEmailInput{
				Source:       aws.String(s.sender),
				Destination:  destination,
				Template:     aws.String(s.passwordResetTemplate),
				TemplateData: aws.String(string(templateParamsBytes)),
			},
		)
		return err
	}

	msg, err := NewPasswordResetMessage(s.passwordResetBaseURL, u, token)
	if err != nil {
		return err
	}
	_, err = s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source:      aws.String(s.sender),
			Destination: destination,
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body:    &types.Body{Text: &types.Content{Data: aws.String(msg.Body)}},
			},
		},
	)
	return err
}
