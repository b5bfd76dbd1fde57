package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/streadway/amqp"
)

// Publisher is the part of the RabbitMQ client the queue sender needs.
type Publisher interface {
	Publish(body []byte) error
}

// QueueSender enqueues messages for a Worker to deliver.
type QueueSender struct {
	publisher Publisher
}

func NewQueueSender(p Publisher) *QueueSender {
	return &QueueSender{publisher: p}
}

func (s *QueueSender) Send(_ context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}
	if err := s.publisher.Publish(body); err != nil {
		return fmt.Errorf("failed to enqueue mail to %s: %w", msg.To, err)
	}
	return nil
}

// Worker drains queued messages into a delivering Sender.
type Worker struct {
	delivery Sender
	logger   *slog.Logger
}

func NewWorker(delivery Sender, logger *slog.Logger) *Worker {
	return &Worker{delivery: delivery, logger: logger}
}

// Handle decodes one queued message and delivers it. It matches the handler
// signature of rabbitmq.Client.Consume.
func (w *Worker) Handle(d amqp.Delivery) error {
	var msg Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return fmt.Errorf("failed to decode mail message: %w", err)
	}
	if err := w.delivery.Send(context.Background(), msg); err != nil {
		return err
	}
	w.logger.Debug("mail delivered", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return nil
}
