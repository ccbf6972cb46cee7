package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tixhook/internal/models"
)

func sampleAttendee() models.Attendee {
	return models.Attendee{
		ID:                 1,
		Status:             "publish",
		TicketID:           7,
		AccessToken:        "acc-1",
		PaymentToken:       "pay-1",
		EditToken:          "edit-1",
		PaymentMethod:      "stripe",
		Timestamp:          "1700000000",
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Email:              "ada@example.org",
		TicketPrice:        "50",
		DiscountedPrice:    "45",
		OrderTotal:         "90",
		Coupon:             "EARLY",
		TransactionID:      "txn-123",
		TransactionDetails: "details",
		Answers: map[string]any{
			"q1": "Vegetarian",
			"q2": []any{"S", "M"},
		},
	}
}

func TestFlattenTicketFixedFields(t *testing.T) {
	ct := FlattenTicket(sampleAttendee(), models.TicketType{ID: 7, Name: "General", Description: "GA ticket"}, nil)

	assert.Equal(t, "acc-1", ct["tix_access_token"])
	assert.Equal(t, "pay-1", ct["tix_payment_token"])
	assert.Equal(t, "edit-1", ct["tix_edit_token"])
	assert.Equal(t, "stripe", ct["tix_payment_method"])
	assert.Equal(t, "1700000000", ct["tix_timestamp"])
	assert.Equal(t, "Ada", ct["tix_first_name"])
	assert.Equal(t, "Lovelace", ct["tix_last_name"])
	assert.Equal(t, "ada@example.org", ct["tix_email"])
	assert.Equal(t, "50", ct["tix_ticket_price"])
	assert.Equal(t, "45", ct["tix_ticket_discounted_price"])
	assert.Equal(t, "90", ct["tix_order_total"])
	assert.Equal(t, "EARLY", ct["tix_coupon"])
	assert.Equal(t, "txn-123", ct["tix_transaction_id"])
	assert.Equal(t, "details", ct["tix_transaction_details"])
	assert.Equal(t, "General", ct["ticket_name"])
	assert.Equal(t, "GA ticket", ct["ticket_description"])
}

func TestFlattenTicketMissingMetadata(t *testing.T) {
	ct := FlattenTicket(models.Attendee{}, models.TicketType{}, nil)

	assert.Equal(t, "", ct["ticket_name"])
	assert.Equal(t, "", ct["ticket_description"])
	assert.Equal(t, "", ct["tix_email"])
}

func TestFlattenTicketQuestions(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Title: "Dietary preference"},
		{ID: "q2", Title: "Shirt sizes"},
		{ID: "q3", Title: "Unanswered"},
	}

	ct := FlattenTicket(sampleAttendee(), models.TicketType{}, questions)

	t.Run("answered questions keyed by display title", func(t *testing.T) {
		assert.Equal(t, "Vegetarian", ct["question_Dietary preference"])
	})

	t.Run("list answers joined in order", func(t *testing.T) {
		assert.Equal(t, "S, M", ct["question_Shirt sizes"])
	})

	t.Run("unanswered questions omitted", func(t *testing.T) {
		_, ok := ct["question_Unanswered"]
		assert.False(t, ok)
	})
}

func TestFlattenTicketDuplicateTitlesLastWins(t *testing.T) {
	a := sampleAttendee()
	a.Answers = map[string]any{"q1": "first", "q2": "second"}
	questions := []models.Question{
		{ID: "q1", Title: "Same"},
		{ID: "q2", Title: "Same"},
	}

	ct := FlattenTicket(a, models.TicketType{}, questions)
	assert.Equal(t, "second", ct["question_Same"])
}
