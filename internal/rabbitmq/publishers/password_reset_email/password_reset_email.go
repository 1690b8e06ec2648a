package passwordresetemail

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ defers reset email delivery to the password reset email consumer.
type RabbitMQ struct {
	log        logging.Logger
	channel    channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, ch channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if ch == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: ch, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	message := &schema.PasswordResetEmail{
		UserID:   int64(u.ID),
		Username: string(u.Username),
		Email:    string(u.Email),
		Token:    string(token),
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("userID", u.ID),
	)
	return nil
}
