package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EMAIL_BACKEND_SES  = "ses"
	EMAIL_BACKEND_SMTP = "smtp"
	EMAIL_BACKEND_LOG  = "log"

	PICTURE_STORAGE_LOCAL = "local"
	PICTURE_STORAGE_S3    = "s3"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Debug      bool `env:"DEBUG" envDefault:"false"`
	Port       uint `env:"PORT" envDefault:"8000"`

	Secret         string   `env:"SECRET,required"`
	PostgresqlURL  string   `env:"POSTGRESQL_URL,required"`
	MigrationsPath string   `env:"MIGRATIONS_PATH"`
	RedisURL       string   `env:"REDIS_URL"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	BcryptHasherCost              int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetTokenMaxAge      time.Duration `env:"PASSWORD_RESET_TOKEN_MAX_AGE" envDefault:"30m"`
	PasswordResetClockSkew        time.Duration `env:"PASSWORD_RESET_CLOCK_SKEW" envDefault:"0s"`
	PasswordResetBaseURL          url.URL       `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:8000/auth/password_reset/"`
	LogInRateLimitPerHour         uint16        `env:"LOG_IN_RATE_LIMIT_PER_HOUR" envDefault:"10"`
	SignUpRateLimitPerHour        uint16        `env:"SIGN_UP_RATE_LIMIT_PER_HOUR" envDefault:"10"`
	PasswordResetRateLimitPerHour uint16        `env:"PASSWORD_RESET_RATE_LIMIT_PER_HOUR" envDefault:"3"`

	EmailBackend string `env:"EMAIL_BACKEND" envDefault:"log"`
	EmailSender  string `env:"EMAIL_SENDER" envDefault:"noreply@blogify.local"`
	MailServer   string `env:"MAIL_SERVER" envDefault:"localhost"`
	MailPort     int    `env:"MAIL_PORT" envDefault:"587"`
	MailUseTLS   bool   `env:"MAIL_USE_TLS" envDefault:"true"`
	MailUsername string `env:"MAIL_USERNAME"`
	MailPassword string `env:"MAIL_PASSWORD"`

	AwsRegion                     string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY"`
	AwsEndpoint                   string `env:"AWS_ENDPOINT"`
	AwsEmailPasswordResetTemplate string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE"`

	RabbitmqURL                string `env:"RABBITMQ_URL"`
	RabbitmqPasswordResetQueue string `env:"RABBITMQ_PASSWORD_RESET_QUEUE" envDefault:"password_reset_email"`

	PictureStorage  string  `env:"PICTURE_STORAGE" envDefault:"local"`
	PictureLocalDir string  `env:"PICTURE_LOCAL_DIR" envDefault:"static/profile_pics"`
	PictureBaseURL  url.URL `env:"PICTURE_BASE_URL" envDefault:"http://localhost:8000/static/profile_pics/"`
	S3Bucket        string  `env:"S3_BUCKET"`
	S3Prefix        string  `env:"S3_PREFIX" envDefault:"profile_pics/"`
}

// Load reads an optional .env file and then parses the process environment.
// Variables already set in the environment take precedence over the file.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}
	return parse(env.Options{})
}

func parse(options env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, options); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("SECRET must not be empty")
	}
	switch c.EmailBackend {
	case EMAIL_BACKEND_SES, EMAIL_BACKEND_SMTP, EMAIL_BACKEND_LOG:
	default:
		return fmt.Errorf("invalid EMAIL_BACKEND value: %q", c.EmailBackend)
	}
	switch c.PictureStorage {
	case PICTURE_STORAGE_LOCAL:
	case PICTURE_STORAGE_S3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET must be set for s3 picture storage")
		}
	default:
		return fmt.Errorf("invalid PICTURE_STORAGE value: %q", c.PictureStorage)
	}
	if c.PasswordResetTokenMaxAge <= 0 {
		return errors.New("PASSWORD_RESET_TOKEN_MAX_AGE must be positive")
	}
	if c.PasswordResetClockSkew < 0 {
		return errors.New("PASSWORD_RESET_CLOCK_SKEW must not be negative")
	}
	return nil
}
