package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment outcome codes as published by the ticketing host.
const (
	PaymentCancelled    = 1
	PaymentCompleted    = 2
	PaymentPending      = 3
	PaymentFailed       = 4
	PaymentTimeout      = 5
	PaymentRefunded     = 6
	PaymentRefundFailed = 7
)

// OutcomeLabels maps outcome codes to their display names.
var OutcomeLabels = map[int]string{
	PaymentCancelled:    "Cancelled",
	PaymentCompleted:    "Completed",
	PaymentPending:      "Pending",
	PaymentFailed:       "Failed",
	PaymentTimeout:      "Timeout",
	PaymentRefunded:     "Refunded",
	PaymentRefundFailed: "Refund Failed",
}

type Event[T any] struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Version      int       `json:"version"`
	Time         time.Time `json:"time"`
	PaymentToken string    `json:"payment_token"`
	Payload      T         `json:"payload"`
}

// PaymentResultPayload carries one payment-state transition from the host.
// Data is the raw gateway blob and has no fixed schema.
type PaymentResultPayload struct {
	Result int            `json:"result"`
	Data   map[string]any `json:"data"`
}

func NewPaymentResultEvent(paymentToken string, result int, data map[string]any) Event[PaymentResultPayload] {
	return Event[PaymentResultPayload]{
		ID:           uuid.NewString(),
		Type:         "payment.result",
		Version:      1,
		Time:         time.Now(),
		PaymentToken: paymentToken,
		Payload: PaymentResultPayload{
			Result: result,
			Data:   data,
		},
	}
}
