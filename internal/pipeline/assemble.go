package pipeline

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"tixhook/internal/models"
)

// HTMLRenderer is the extension point for collaborators that want to attach a
// presentation rendition to the document. It receives the fully assembled
// document and returns the HTML to store in custom_html.
type HTMLRenderer func(doc models.OutboundDocument) string

// AssembleInput carries everything the assembler merges into one document.
type AssembleInput struct {
	PaymentToken string
	Result       int
	Data         map[string]any
	EventName    string
	SiteURL      string
	Tickets      []models.CanonicalTicket
	Payment      models.CanonicalPayment
	Now          time.Time
	RenderHTML   HTMLRenderer
}

// Assemble merges the flattened tickets, the normalized payment record and
// derived aggregates into the outbound document. Deterministic apart from the
// timestamp supplied by the caller.
func Assemble(in AssembleInput) (models.OutboundDocument, error) {
	doc := models.OutboundDocument{
		PaymentToken: in.PaymentToken,
		ResultType:   in.Result,
		Data:         in.Data,
		EventName:    in.EventName,
		SiteURL:      in.SiteURL,
		OrderID:      orderID(in.EventName, in.PaymentToken),
		Timestamp:    in.Now.Format(time.RFC1123Z),
		Payment:      in.Payment,
	}

	doc.Attendees = make([]string, 0, len(in.Tickets))
	for _, t := range in.Tickets {
		b, err := json.Marshal(t)
		if err != nil {
			return models.OutboundDocument{}, fmt.Errorf("encode ticket: %w", err)
		}
		doc.Attendees = append(doc.Attendees, string(b))
	}

	if len(in.Tickets) > 0 {
		primary := in.Tickets[0]
		doc.Coupon = primary["tix_coupon"]
		doc.Total = primary["tix_order_total"]
		doc.PaymentMethod = primary["tix_payment_method"]
		doc.ReceiptFirst = primary["tix_first_name"]
		doc.ReceiptLast = primary["tix_last_name"]
		doc.ReceiptName = joinName(doc.ReceiptFirst, doc.ReceiptLast)
	}

	doc.TotalFormatted = doc.Total
	if doc.Total != "" && in.Payment.Currency != "" {
		doc.TotalFormatted = doc.Total + " " + in.Payment.Currency
	}

	// A payer name found in the gateway blob beats the primary ticket's.
	if first, last, full, found := PayerName(in.Data); found {
		doc.ReceiptFirst = first
		doc.ReceiptLast = last
		doc.ReceiptName = full
	}

	doc.Emails = collectEmails(in.Tickets, in.Payment.Email)

	if in.RenderHTML != nil {
		doc.CustomHTML = in.RenderHTML(doc)
	}
	return doc, nil
}

// orderID derives a short human-readable label for the purchase. crc32 has a
// nontrivial collision rate: this is a display convenience, never an identity.
func orderID(eventName, paymentToken string) string {
	return fmt.Sprintf("%08x-%08x",
		crc32.ChecksumIEEE([]byte(eventName)),
		crc32.ChecksumIEEE([]byte(paymentToken)))
}

// collectEmails gathers every attendee email plus the payment email,
// deduplicated in first-seen order.
func collectEmails(tickets []models.CanonicalTicket, paymentEmail string) []string {
	seen := make(map[string]bool)
	out := []string{}
	add := func(e string) {
		if e != "" && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	for _, t := range tickets {
		add(t["tix_email"])
	}
	add(paymentEmail)
	return out
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
