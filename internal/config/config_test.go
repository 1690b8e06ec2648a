package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requiredEnv() map[string]string {
	return map[string]string{
		"SECRET":         "test-secret",
		"POSTGRESQL_URL": "postgres://localhost:5432/blogify",
	}
}

func TestParseDefaults(t *testing.T) {
	config, err := parse(env.Options{Environment: requiredEnv()})
	require.NoError(t, err)

	assert.Equal(t, "test-secret", config.Secret)
	assert.Equal(t, uint(8000), config.Port)
	assert.Equal(t, 10, config.BcryptHasherCost)
	assert.Equal(t, 30*time.Minute, config.PasswordResetTokenMaxAge)
	assert.Equal(t, time.Duration(0), config.PasswordResetClockSkew)
	assert.Equal(t, EMAIL_BACKEND_LOG, config.EmailBackend)
	assert.Equal(t, PICTURE_STORAGE_LOCAL, config.PictureStorage)
	assert.Equal(t, []string{"*"}, config.AllowedOrigins)
	assert.Equal(t, "localhost:8000", config.PasswordResetBaseURL.Host)
	assert.Empty(t, config.RedisURL)
	assert.Empty(t, config.RabbitmqURL)
}

func TestParseOverrides(t *testing.T) {
	environment := requiredEnv()
	environment["PORT"] = "9000"
	environment["PASSWORD_RESET_TOKEN_MAX_AGE"] = "15m"
	environment["PASSWORD_RESET_CLOCK_SKEW"] = "5s"
	environment["ALLOWED_ORIGINS"] = "https://a.test,https://b.test"
	environment["EMAIL_BACKEND"] = "smtp"
	environment["PICTURE_STORAGE"] = "s3"
	environment["S3_BUCKET"] = "pictures"

	config, err := parse(env.Options{Environment: environment})
	require.NoError(t, err)

	assert.Equal(t, uint(9000), config.Port)
	assert.Equal(t, 15*time.Minute, config.PasswordResetTokenMaxAge)
	assert.Equal(t, 5*time.Second, config.PasswordResetClockSkew)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, config.AllowedOrigins)
	assert.Equal(t, EMAIL_BACKEND_SMTP, config.EmailBackend)
	assert.Equal(t, "pictures", config.S3Bucket)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		set  map[string]string
		drop []string
	}{
		{name: "missing secret", drop: []string{"SECRET"}},
		{name: "empty secret", set: map[string]string{"SECRET": ""}},
		{name: "missing database", drop: []string{"POSTGRESQL_URL"}},
		{name: "unknown email backend", set: map[string]string{"EMAIL_BACKEND": "pigeon"}},
		{name: "unknown picture storage", set: map[string]string{"PICTURE_STORAGE": "floppy"}},
		{name: "s3 without bucket", set: map[string]string{"PICTURE_STORAGE": "s3"}},
		{name: "zero max age", set: map[string]string{"PASSWORD_RESET_TOKEN_MAX_AGE": "0s"}},
		{name: "negative skew", set: map[string]string{"PASSWORD_RESET_CLOCK_SKEW": "-1s"}},
		{name: "invalid duration", set: map[string]string{"PASSWORD_RESET_TOKEN_MAX_AGE": "soon"}},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			environment := requiredEnv()
			for k, v := range testcase.set {
				environment[k] = v
			}
			for _, k := range testcase.drop {
				delete(environment, k)
			}
			_, err := parse(env.Options{Environment: environment})
			assert.Error(t, err)
		})
	}
}
