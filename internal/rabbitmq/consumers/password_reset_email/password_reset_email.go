package passwordresetemail

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/rabbitmq"
	"blogify/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  user.PasswordResetTokenSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender user.PasswordResetTokenSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			handle(context.Background(), c.log, c.sender, delivery.Body)
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

// handle never returns an error: a failed email is logged and dropped, the
// user can request another one.
func handle(ctx context.Context, log logging.Logger, sender user.PasswordResetTokenSender, body []byte) {
	message := &schema.PasswordResetEmail{}
	if err := message.Unmarshal(body); err != nil {
		log.Error(ctx, "Could not unmarshal password reset email.", logging.Entry("err", err))
		return
	}

	u := user.User{
		ID:       user.ID(message.UserID),
		Username: user.Username(message.Username),
		Email:    c.NewEmail(message.Email),
	}
	if err := sender.SendPasswordResetToken(ctx, u, user.PasswordResetToken(message.Token)); err != nil {
		log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return
	}
	log.Info(ctx, "Password reset email has been sent.", logging.Entry("userID", u.ID))
}
