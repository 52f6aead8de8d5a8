package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/mq"
)

// QueueDispatcher hands mails to RabbitMQ; a Consumer delivers them.
type QueueDispatcher struct {
	mu        sync.Mutex
	ch        mq.Publisher
	queueName string
}

func NewQueueDispatcher(ch mq.Publisher, queueName string) *QueueDispatcher {
	return &QueueDispatcher{
		ch:        ch,
		queueName: queueName,
	}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, m domain.VerificationMail) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := mq.SendImmediateMessage(ctx, d.ch, d.queueName, mq.VerificationMailMessage{
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Token:     m.Token,
	})
	if err != nil {
		dispatchTotal.WithLabelValues("rabbitmq", "failed").Inc()
		return err
	}

	dispatchTotal.WithLabelValues("rabbitmq", "queued").Inc()
	return nil
}

type Consumer struct {
	sender    Sender
	queueName string
}

func NewConsumer(sender Sender, queueName string) *Consumer {
	return &Consumer{
		sender:    sender,
		queueName: queueName,
	}
}

func (c *Consumer) Start(conn *amqp.Connection) error {
	ch, err := mq.NewChannel(conn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("ch.Consume -> %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := c.handle(msg); err != nil {
				zap.L().Error("failed to handle verification mail", zap.Error(err))
			}
		}
	}()

	return nil
}

// Acknowledger is the subset of amqp.Delivery acknowledgement used by handle.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) handle(msg amqp.Delivery) error {
	return c.process(msg, msg.Body, msg.Redelivered)
}

// process requeues a failed delivery once; a second failure drops it.
func (c *Consumer) process(ack Acknowledger, body []byte, redelivered bool) error {
	var message mq.VerificationMailMessage
	if err := json.Unmarshal(body, &message); err != nil {
		c.reject(ack, false)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err := c.sender.Send(ctx, domain.VerificationMail{
		Email:     message.Email,
		FirstName: message.FirstName,
		LastName:  message.LastName,
		Token:     message.Token,
	})
	trackDelivery(err)
	if err != nil {
		c.reject(ack, !redelivered)
		return err
	}

	c.acknowledge(ack)

	return nil
}

func (c *Consumer) acknowledge(ack Acknowledger) {
	if err := ack.Ack(false); err != nil {
		zap.L().Warn("failed to ack verification mail", zap.String("queue", c.queueName), zap.Error(err))
	}
}

func (c *Consumer) reject(ack Acknowledger, requeue bool) {
	if err := ack.Nack(false, requeue); err != nil {
		zap.L().Warn("failed to nack verification mail",
			zap.String("queue", c.queueName),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
	}
}
