package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsHandledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tixhook_events_handled_total",
		Help: "Payment result events handled, by outcome",
	}, []string{"outcome"})
	DispatchSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tixhook_dispatch_sent_total",
		Help: "Webhook documents successfully delivered",
	})
	DispatchErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tixhook_dispatch_errors_total",
		Help: "Webhook deliveries that failed at the transport level",
	})
	DispatchSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tixhook_dispatch_skipped_total",
		Help: "Events skipped because no hook URL is configured for the outcome",
	})
	EmptyPaymentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tixhook_empty_payment_total",
		Help: "Events with no attendee records for the payment token",
	})
)

func init() {
	prometheus.MustRegister(EventsHandledTotal, DispatchSentTotal, DispatchErrorsTotal, DispatchSkippedTotal, EmptyPaymentTotal)
}
