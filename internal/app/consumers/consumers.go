package consumers

import (
	"blogify/internal/app/deps"
	dl "blogify/internal/core/domain/logging"
	passwordresetemail "blogify/internal/rabbitmq/consumers/password_reset_email"
	"context"
)

func initPasswordResetEmailConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}
	consumer := passwordresetemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err = consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

// InitConsumers starts queue consumers. Nothing is consumed when RabbitMQ is
// not configured since emails are then sent synchronously.
func InitConsumers(deps *deps.Deps) func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}
	shutdownPasswordResetEmailConsumer := initPasswordResetEmailConsumer(deps)

	return func() {
		shutdownPasswordResetEmailConsumer()
	}
}
