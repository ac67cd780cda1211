package activationemail

import (
	"context"
	"simpleauth/internal/core/domain/common"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/rabbitmq"
	"simpleauth/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer drains queued activation emails and hands them to a concrete
// sender. Delivery failures are logged and the message acknowledged anyway:
// the user can always request a resend.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  user.ActivationCodeSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender user.ActivationCodeSender,
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
			message := &schema.ActivationEmail{}
			if err := message.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal activation email message.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			u := user.User{ID: user.ID(message.UserID), Email: common.Email(message.Email)}
			if err := c.sender.SendActivationCode(context.Background(), u, user.Code(message.Code)); err != nil {
				c.log.Error(
					context.Background(),
					"Could not send activation email.",
					logging.Entry("userId", message.UserID),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
