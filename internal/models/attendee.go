package models

// Attendee statuses that still carry purchase data worth forwarding.
var AttendeeStatuses = []string{"draft", "pending", "publish", "cancel", "refund", "failed"}

// Attendee is one raw attendee/ticket record as stored by the ticketing host.
// Answers maps question id to the raw answer value, which may be a list.
type Attendee struct {
	ID                 int64
	Status             string
	TicketID           int64
	AccessToken        string
	PaymentToken       string
	EditToken          string
	PaymentMethod      string
	Timestamp          string
	FirstName          string
	LastName           string
	Email              string
	TicketPrice        string
	DiscountedPrice    string
	OrderTotal         string
	Coupon             string
	TransactionID      string
	TransactionDetails string
	Answers            map[string]any
}

// TicketType is the ticket-type metadata an attendee record points at.
type TicketType struct {
	ID          int64
	Name        string
	Description string
}

// Question is one custom question attached to a ticket type, in display order.
type Question struct {
	ID    string
	Title string
}
