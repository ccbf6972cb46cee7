package worker

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixhook/internal/models"
	"tixhook/internal/pipeline"
)

type fakePipe struct {
	tokens  []string
	results []int
	err     error
}

func (f *fakePipe) Handle(ctx context.Context, paymentToken string, result int, data map[string]any) error {
	f.tokens = append(f.tokens, paymentToken)
	f.results = append(f.results, result)
	return f.err
}

func deliveryFor(t *testing.T, evt models.Event[models.PaymentResultPayload]) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(evt)
	require.NoError(t, err)
	return amqp.Delivery{RoutingKey: "payment.result", Body: body}
}

func TestConsumerHandlesPaymentResult(t *testing.T) {
	pipe := &fakePipe{}
	c := &Consumer{Log: zerolog.Nop(), Pipe: pipe}

	evt := models.NewPaymentResultEvent("pay-1", models.PaymentCompleted, map[string]any{"charge": map[string]any{"currency": "usd"}})
	c.handle(context.Background(), deliveryFor(t, evt))

	require.Len(t, pipe.tokens, 1)
	assert.Equal(t, "pay-1", pipe.tokens[0])
	assert.Equal(t, models.PaymentCompleted, pipe.results[0])
}

func TestConsumerIgnoresUnexpectedRoutingKey(t *testing.T) {
	pipe := &fakePipe{}
	c := &Consumer{Log: zerolog.Nop(), Pipe: pipe}

	evt := models.NewPaymentResultEvent("pay-1", models.PaymentCompleted, nil)
	d := deliveryFor(t, evt)
	d.RoutingKey = "attendee.updated"
	c.handle(context.Background(), d)

	assert.Empty(t, pipe.tokens)
}

func TestConsumerAcksMissingAttendees(t *testing.T) {
	// ErrNoAttendees is an anomaly the pipeline already logged; redelivering
	// the event cannot fix it, so the consumer must not route it to retry/dlq.
	pipe := &fakePipe{err: pipeline.ErrNoAttendees}
	c := &Consumer{Log: zerolog.Nop(), Pipe: pipe}

	evt := models.NewPaymentResultEvent("pay-ghost", models.PaymentCompleted, nil)
	c.handle(context.Background(), deliveryFor(t, evt))

	assert.Len(t, pipe.tokens, 1)
}
