package consumers

import (
	"context"
	"simpleauth/internal/app/deps"
	dl "simpleauth/internal/core/domain/logging"
	activationemail "simpleauth/internal/rabbitmq/consumers/activation_email"
)

func initActivationEmailConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.AmqpActivationEmailQueue
	activationEmailConsumer := activationemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err = activationEmailConsumer.Consume(); err != nil {
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

// InitConsumers is a no-op unless AMQP is configured.
func InitConsumers(deps *deps.Deps) func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}

	shutdownActivationEmailConsumer := initActivationEmailConsumer(deps)

	return func() {
		shutdownActivationEmailConsumer()
	}
}
