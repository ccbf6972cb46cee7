package repo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"tixhook/internal/models"
)

type AttendeesPG struct{ DB *pgxpool.Pool }

// ListByPaymentToken returns every attendee record tied to the payment token,
// across all statuses, in insertion order. An empty result means the event
// references a payment the store knows nothing about.
func (r *AttendeesPG) ListByPaymentToken(ctx context.Context, token string) ([]models.Attendee, error) {
	rows, err := r.DB.Query(ctx, `
		select id, status, ticket_id,
		       access_token, payment_token, edit_token,
		       payment_method, purchase_ts,
		       first_name, last_name, email,
		       ticket_price, discounted_price, order_total,
		       coupon, transaction_id, transaction_details,
		       coalesce(answers::text, '{}')
		from attendees
		where payment_token = $1
		  and status = any($2)
		order by id
	`, token, models.AttendeeStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Attendee
	for rows.Next() {
		var a models.Attendee
		var answersText string
		if err := rows.Scan(
			&a.ID, &a.Status, &a.TicketID,
			&a.AccessToken, &a.PaymentToken, &a.EditToken,
			&a.PaymentMethod, &a.Timestamp,
			&a.FirstName, &a.LastName, &a.Email,
			&a.TicketPrice, &a.DiscountedPrice, &a.OrderTotal,
			&a.Coupon, &a.TransactionID, &a.TransactionDetails,
			&answersText,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersText), &a.Answers); err != nil {
			a.Answers = map[string]any{}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
