// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"frituurgros/internal/domain"
)

const (
	orderCreatedTopic     = "order.created"
	orderCompensatedTopic = "order.compensated"
)

// Producer writes order events. Checkout treats publish failures as
// non-fatal; they are logged and the order stands.
type Producer struct {
	created     *kafka.Writer
	compensated *kafka.Writer
	logger      *zap.Logger
}

func NewProducer(brokers string, logger *zap.Logger) *Producer {
	return &Producer{
		created: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    orderCreatedTopic,
			Balancer: &kafka.LeastBytes{},
		},
		compensated: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    orderCompensatedTopic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

func (p *Producer) OrderCreated(ctx context.Context, order domain.Order) error {
	event := OrderCreatedEvent{
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		ClientID:   order.ClientID,
		Total:      order.Total.String(),
		LineCount:  len(order.Lines),
		OccurredAt: time.Now().UTC(),
	}
	if err := p.publish(ctx, p.created, order.ID, event); err != nil {
		return err
	}
	p.logger.Info("published order created event",
		zap.String("order_id", order.ID), zap.String("client_id", order.ClientID))
	return nil
}

func (p *Producer) OrderCompensated(ctx context.Context, orderID, reason string) error {
	event := OrderCompensatedEvent{
		EventID:    uuid.NewString(),
		OrderID:    orderID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.publish(ctx, p.compensated, orderID, event); err != nil {
		return err
	}
	p.logger.Info("published order compensated event", zap.String("order_id", orderID))
	return nil
}

func (p *Producer) Close() error {
	if err := p.created.Close(); err != nil {
		return err
	}
	return p.compensated.Close()
}

func (p *Producer) publish(ctx context.Context, w *kafka.Writer, key string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

// Nop is used when no Kafka brokers are configured, and in tests.
type Nop struct{}

func (Nop) OrderCreated(context.Context, domain.Order) error       { return nil }
func (Nop) OrderCompensated(context.Context, string, string) error { return nil }
