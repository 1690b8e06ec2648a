package passwordresetemail

import (
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/rabbitmq/schema"
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange  string
	key       string
	published []amqp091.Publishing
	err       error
}

func (c *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if c.err != nil {
		return c.err
	}
	c.exchange, c.key = exchange, key
	c.published = append(c.published, msg)
	return nil
}

func TestPublish(t *testing.T) {
	ch := &fakeChannel{}
	publisher := NewRabbitMQ(logging.NewFakeLogger(), ch, "", "password-reset-emails")
	u := user.User{ID: 3, Username: "john", Email: "john@test.test"}

	require.NoError(t, publisher.SendPasswordResetToken(context.Background(), u, "a.b.c"))

	require.Equal(t, "password-reset-emails", ch.key)
	require.Len(t, ch.published, 1)
	require.Equal(t, amqp091.Persistent, ch.published[0].DeliveryMode)
	message := &schema.PasswordResetEmail{}
	require.NoError(t, message.Unmarshal(ch.published[0].Body))
	require.Equal(t, schema.PasswordResetEmail{UserID: 3, Username: "john", Email: "john@test.test", Token: "a.b.c"}, *message)
}

func TestPublishError(t *testing.T) {
	log := logging.NewFakeLogger()
	ch := &fakeChannel{err: errors.New("channel closed")}
	publisher := NewRabbitMQ(log, ch, "", "password-reset-emails")

	err := publisher.SendPasswordResetToken(context.Background(), user.User{ID: 3}, "a.b.c")

	require.Error(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
