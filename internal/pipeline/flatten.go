package pipeline

import (
	"strings"

	"tixhook/internal/models"
)

// FlattenTicket converts one attendee record plus its ticket-type metadata and
// question definitions into the flat canonical form. Pure data copying: missing
// metadata becomes empty strings, unanswered questions are omitted.
func FlattenTicket(a models.Attendee, t models.TicketType, questions []models.Question) models.CanonicalTicket {
	ct := models.CanonicalTicket{
		"tix_access_token":            a.AccessToken,
		"tix_payment_token":           a.PaymentToken,
		"tix_edit_token":              a.EditToken,
		"tix_payment_method":          a.PaymentMethod,
		"tix_timestamp":               a.Timestamp,
		"tix_first_name":              a.FirstName,
		"tix_last_name":               a.LastName,
		"tix_email":                   a.Email,
		"tix_ticket_price":            a.TicketPrice,
		"tix_ticket_discounted_price": a.DiscountedPrice,
		"tix_order_total":             a.OrderTotal,
		"tix_coupon":                  a.Coupon,
		"tix_transaction_id":          a.TransactionID,
		"tix_transaction_details":     a.TransactionDetails,
		"ticket_name":                 t.Name,
		"ticket_description":          t.Description,
	}

	for _, q := range questions {
		answer, ok := a.Answers[q.ID]
		if !ok {
			continue
		}
		ct["question_"+q.Title] = answerString(answer)
	}
	return ct
}

// answerString renders a raw answer value; list answers are joined with ", ".
func answerString(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, scalarString(item))
		}
		return strings.Join(parts, ", ")
	}
	return scalarString(v)
}
