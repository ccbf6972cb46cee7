package worker

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"tixhook/internal/models"
	"tixhook/internal/pipeline"
	"tixhook/internal/rabbit"
)

// Handler is the pipeline entry point the consumer drives.
type Handler interface {
	Handle(ctx context.Context, paymentToken string, result int, data map[string]any) error
}

type Consumer struct {
	Log  zerolog.Logger
	Pipe Handler

	RetryPub *rabbit.Publisher
	DLQPub   *rabbit.Publisher

	Service     string
	MaxAttempts int
	DLQKey      string
}

func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	c.Log.Info().Msg("payment result consumer started")
	for {
		select {
		case <-ctx.Done():
			c.Log.Info().Msg("payment result consumer stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				c.Log.Info().Msg("deliveries closed")
				return
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var evt models.Event[models.PaymentResultPayload]
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.Log.Error().Err(err).Str("rk", d.RoutingKey).Msg("bad json -> dlq")
		_ = rabbit.RetryOrDLQ(ctx, d, c.Service, 0, c.RetryPub, c.DLQPub, c.DLQKey)
		return
	}
	if evt.ID == "" || evt.PaymentToken == "" {
		c.Log.Error().Str("rk", d.RoutingKey).Msg("missing id/payment_token -> dlq")
		_ = rabbit.RetryOrDLQ(ctx, d, c.Service, 0, c.RetryPub, c.DLQPub, c.DLQKey)
		return
	}

	if d.RoutingKey != "payment.result" {
		c.Log.Warn().Str("rk", d.RoutingKey).Str("payment_token", evt.PaymentToken).Msg("unexpected routing key -> ack")
		_ = d.Ack(false)
		return
	}

	err := c.Pipe.Handle(ctx, evt.PaymentToken, evt.Payload.Result, evt.Payload.Data)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoAttendees) {
			// Already logged and counted by the pipeline; redelivery won't
			// make the records appear.
			_ = d.Ack(false)
			return
		}
		c.Log.Error().Err(err).Str("payment_token", evt.PaymentToken).Msg("pipeline failed -> retry/dlq")
		_ = rabbit.RetryOrDLQ(ctx, d, c.Service, int32(c.MaxAttempts), c.RetryPub, c.DLQPub, c.DLQKey)
		return
	}

	_ = d.Ack(false)
}
