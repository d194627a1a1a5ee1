package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderEvent is published on every order lifecycle change. Consumers are
// downstream analytics; delivery is best-effort.
type OrderEvent struct {
	Type      string    `json:"type"` // order.placed | order.status_changed
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ProducerAPI lets services publish without binding to a concrete writer.
type ProducerAPI interface {
	PublishOrderEvent(ctx context.Context, evt OrderEvent) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
	topic  string
	log    *zap.Logger
}

func NewProducer(brokers, topic string, log *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka producer initialized",
		zap.String("topic", topic),
		zap.String("brokers", brokers),
	)
	return &Producer{writer: w, topic: topic, log: log}
}

func (p *Producer) PublishOrderEvent(ctx context.Context, evt OrderEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish order event",
			zap.String("order_id", evt.OrderID),
			zap.String("type", evt.Type),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	p.log.Info("Closing kafka producer", zap.String("topic", p.topic))
	return p.writer.Close()
}
