package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher sends events to a durable topic exchange, routed by event type.
// Each publish uses a short-lived connection so a broker outage never wedges
// request handling.
type AMQPPublisher struct {
	url      string
	exchange string
	log      *zap.Logger
}

func NewAMQPPublisher(url, exchange string, log *zap.Logger) *AMQPPublisher {
	if exchange == "" {
		exchange = "hotel.events"
	}
	return &AMQPPublisher{url: url, exchange: exchange, log: log}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	msg, err := message(ev)
	if err != nil {
		p.log.Error("rabbitmq: marshal event failed", zap.String("type", string(ev.Type)), zap.Error(err))
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		p.log.Warn("rabbitmq: exchange declare failed", zap.String("exchange", p.exchange), zap.Error(err))
		return err
	}

	if err := ch.PublishWithContext(ctx, p.exchange, string(ev.Type), false, false, msg); err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.String("type", string(ev.Type)), zap.Error(err))
		return err
	}
	p.log.Debug("event published", zap.String("type", string(ev.Type)), zap.String("id", ev.ID))
	return nil
}

func message(ev Event) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	ts := ev.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         string(ev.Type),
		Timestamp:    ts,
		Headers:      amqp.Table{"tenant_id": ev.TenantID},
		Body:         body,
	}, nil
}
