package main

import (
	"blogify/internal/config"
	"blogify/internal/implementations/email"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SES templates use handlebars placeholders filled from the JSON template data.
const (
	PASSWORD_RESET_TEXT = `Hi {{username}},

To reset your password visit the following link:
{{passwordResetUrl}}

If you did not make this request, simply ignore this email, and
no changes will be made to your account.
`
	PASSWORD_RESET_HTML = `<p>Hi {{username}},</p>
<p>To reset your password visit the following link:</p>
<p><a href="{{passwordResetUrl}}">{{passwordResetUrl}}</a></p>
<p>If you did not make this request, simply ignore this email, and
no changes will be made to your account.</p>
`
)

func main() {
	action := flag.String("action", "create", "create or delete")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}
	name := cfg.AwsEmailPasswordResetTemplate
	if name == "" {
		exit(fmt.Errorf("AWS_EMAIL_PASSWORD_RESET_TEMPLATE is not set"))
	}

	svc := ses.NewFromConfig(loadAwsConfig(cfg))
	switch *action {
	case "create":
		_, err = svc.CreateTemplate(context.Background(), &ses.CreateTemplateInput{
			Template: &types.Template{
				TemplateName: aws.String(name),
				SubjectPart:  aws.String(email.PASSWORD_RESET_SUBJECT),
				TextPart:     aws.String(PASSWORD_RESET_TEXT),
				HtmlPart:     aws.String(PASSWORD_RESET_HTML),
			},
		})
	case "delete":
		_, err = svc.DeleteTemplate(context.Background(), &ses.DeleteTemplateInput{
			TemplateName: aws.String(name),
		})
	default:
		err = fmt.Errorf("unknown action %q", *action)
	}
	if err != nil {
		exit(err)
	}
	fmt.Printf("Template %q: %s done.\n", name, *action)
}

func loadAwsConfig(cfg *config.Config) aws.Config {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(cfg.AwsRegion)}
	if cfg.AwsAccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKey, cfg.AwsSecretKey, ""),
		))
	}
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		exit(err)
	}
	return awsCfg
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
