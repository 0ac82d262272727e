// Package notification publishes order events for downstream consumers, the
// receipt mailer among them.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type ReceiptPublisher interface {
	PublishOrderPaid(ctx context.Context, order *domain.Order, email string) error
}

type KafkaReceipts struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

func NewKafkaReceipts(logger zerolog.Logger, brokers ...string) *KafkaReceipts {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-receipts",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaReceipts{writer: w, logger: logger}
}

func (k *KafkaReceipts) PublishOrderPaid(ctx context.Context, order *domain.Order, email string) error {
	payload := map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"email":       email,
		"items":       order.Items,
		"total_price": order.TotalPrice,
		"paid_at":     order.PaidAt,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID), // order_id for ordering
		Value: payloadJSON,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_paid")},
		},
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish receipt event: %w", err)
	}

	k.logger.Info().Str("order_id", order.ID).Msg("receipt event published")
	return nil
}

func (k *KafkaReceipts) Close() error {
	return k.writer.Close()
}
