package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"tixhook/internal/metrics"
	"tixhook/internal/models"
)

// ErrNoAttendees marks an event whose payment token matches nothing in the
// store. That is a data-consistency anomaly, not a routine miss.
var ErrNoAttendees = errors.New("no attendees found for payment token")

type AttendeeStore interface {
	ListByPaymentToken(ctx context.Context, token string) ([]models.Attendee, error)
}

type TicketStore interface {
	Get(ctx context.Context, id int64) (models.TicketType, error)
	Questions(ctx context.Context, id int64) ([]models.Question, error)
}

type HookResolver interface {
	HookURL(ctx context.Context, code int) (string, error)
}

type Dispatcher interface {
	Send(ctx context.Context, url string, doc models.OutboundDocument) error
}

// Pipeline runs the whole collect -> flatten -> normalize -> assemble ->
// dispatch path for one payment-result event, synchronously, with no state
// kept between events.
type Pipeline struct {
	Log       zerolog.Logger
	Attendees AttendeeStore
	Tickets   TicketStore
	Hooks     HookResolver
	Dispatch  Dispatcher

	EventName  string
	SiteURL    string
	RenderHTML HTMLRenderer

	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Handle processes one payment-result event end to end. Delivery is best
// effort: transport failures are logged and counted, never returned.
func (p *Pipeline) Handle(ctx context.Context, paymentToken string, result int, data map[string]any) error {
	metrics.EventsHandledTotal.WithLabelValues(strconv.Itoa(result)).Inc()

	endpoint, err := p.Hooks.HookURL(ctx, result)
	if err != nil {
		return fmt.Errorf("resolve hook url: %w", err)
	}
	if endpoint == "" {
		metrics.DispatchSkippedTotal.Inc()
		p.Log.Debug().Int("result", result).Str("payment_token", paymentToken).Msg("no hook configured, skipping")
		return nil
	}

	attendees, err := p.Attendees.ListByPaymentToken(ctx, paymentToken)
	if err != nil {
		return fmt.Errorf("list attendees: %w", err)
	}
	if len(attendees) == 0 {
		metrics.EmptyPaymentTotal.Inc()
		p.Log.Error().Str("payment_token", paymentToken).Int("result", result).Msg("no attendees for payment token")
		return ErrNoAttendees
	}

	// Ticket-type metadata and questions are shared across attendees of the
	// same type; fetch each type once.
	types := map[int64]models.TicketType{}
	questions := map[int64][]models.Question{}

	tickets := make([]models.CanonicalTicket, 0, len(attendees))
	for _, a := range attendees {
		if _, ok := types[a.TicketID]; !ok {
			t, err := p.Tickets.Get(ctx, a.TicketID)
			if err != nil {
				return fmt.Errorf("ticket %d: %w", a.TicketID, err)
			}
			qs, err := p.Tickets.Questions(ctx, a.TicketID)
			if err != nil {
				return fmt.Errorf("questions for ticket %d: %w", a.TicketID, err)
			}
			types[a.TicketID] = t
			questions[a.TicketID] = qs
		}
		tickets = append(tickets, FlattenTicket(a, types[a.TicketID], questions[a.TicketID]))
	}

	payment := NormalizePayment(data, tickets)

	doc, err := Assemble(AssembleInput{
		PaymentToken: paymentToken,
		Result:       result,
		Data:         data,
		EventName:    p.EventName,
		SiteURL:      p.SiteURL,
		Tickets:      tickets,
		Payment:      payment,
		Now:          p.now(),
		RenderHTML:   p.RenderHTML,
	})
	if err != nil {
		return fmt.Errorf("assemble document: %w", err)
	}

	if err := p.Dispatch.Send(ctx, endpoint, doc); err != nil {
		metrics.DispatchErrorsTotal.Inc()
		p.Log.Error().Err(err).Str("payment_token", paymentToken).Str("url", endpoint).Msg("webhook delivery failed")
		return nil
	}
	metrics.DispatchSentTotal.Inc()
	p.Log.Info().Str("payment_token", paymentToken).Int("result", result).Int("attendees", len(tickets)).Msg("webhook delivered")
	return nil
}
