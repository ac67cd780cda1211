package activationemail

import (
	"context"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/rabbitmq"
	"simpleauth/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ is an ActivationCodeSender that defers delivery to a consumer
// worker instead of calling the mail provider on the request path.
type RabbitMQ struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (s *RabbitMQ) SendActivationCode(ctx context.Context, u user.User, code user.Code) error {
	message := schema.ActivationEmail{
		UserID: int64(u.ID),
		Email:  string(u.Email),
		Code:   string(code),
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"Activation email has been queued.",
		logging.Entry("queue", s.queue),
		logging.Entry("userId", u.ID),
	)
	return nil
}
