package messaging

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/streadway/amqp"
	"github.com/tienda-store/fulfillment/internal/domain"
	"go.uber.org/zap"
)

// ChangePublisher pushes change-event envelopes to the topic exchange.
// Delivery is best-effort; the caller treats errors as a logged side-effect
// failure, never as a write failure.
type ChangePublisher struct {
	client *RabbitMQClient
	log    *zap.Logger
}

func NewChangePublisher(client *RabbitMQClient, log *zap.Logger) *ChangePublisher {
	return &ChangePublisher{client: client, log: log}
}

func (p *ChangePublisher) PublishChange(event domain.ChangeEvent) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	routingKey := fmt.Sprintf("tienda.%s.%s",
		strings.ToLower(event.Entity), strings.ToLower(string(event.Kind)))

	channel := p.client.Channel()
	err = channel.Publish(
		p.client.config.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   event.CreatedAt,
			Headers: amqp.Table{
				"entity": event.Entity,
				"kind":   string(event.Kind),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %w", err)
	}

	p.log.Info("change event published",
		zap.String("routing_key", routingKey),
		zap.String("entity", event.Entity),
		zap.String("kind", string(event.Kind)))
	return nil
}
