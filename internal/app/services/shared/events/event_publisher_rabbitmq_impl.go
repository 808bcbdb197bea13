package events

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

type rabbitMQPublisher struct {
	Channel *amqp091.Channel
	Queue   string
}

// NewRabbitMQPublisher opens a channel on the connection and declares the
// durable event queue so publishing works before any worker has started.
func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, queue string) (contracts.EventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	return &rabbitMQPublisher{
		Channel: channel,
		Queue:   queue,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event *models.DomainEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type": "JSON",
		"event":        event.Name,
	}

	message := amqp091.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp091.Persistent,
		Headers:       headers,
		CorrelationId: event.RequestID,
		Timestamp:     event.OccurredAt,
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}
	return nil
}
