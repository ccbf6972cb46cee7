package models

// CanonicalTicket is the flattened form of one attendee record: fixed fields
// plus one question_<title> entry per answered custom question.
type CanonicalTicket map[string]string

// CanonicalPayment is the normalized payment/billing record extracted from the
// raw gateway blob. Every field is always present; unresolved fields are "".
type CanonicalPayment struct {
	TransactionID  string `json:"transaction_id"`
	AddressLine1   string `json:"address_line1"`
	AddressLine2   string `json:"address_line2"`
	AddressState   string `json:"address_state"`
	AddressCity    string `json:"address_city"`
	AddressCountry string `json:"address_country"`
	AddressZip     string `json:"address_zip"`
	CardLast4      string `json:"card_last4"`
	ExpMonth       string `json:"exp_month"`
	ExpYear        string `json:"exp_year"`
	ZipCheck       string `json:"zip_check"`
	CVCCheck       string `json:"cvc_check"`
	AddressCheck   string `json:"address_check"`
	Email          string `json:"email"`
	Fingerprint    string `json:"fingerprint"`
	FundingType    string `json:"funding_type"`
	Brand          string `json:"brand"`
	RiskLevel      string `json:"risk_level"`
	ClientIP       string `json:"client_ip"`
	Currency       string `json:"currency"`
}

// OutboundDocument is the payload POSTed to the configured webhook. Each
// attendee entry is an individually JSON-encoded CanonicalTicket so the
// receiver gets one opaque blob per ticket.
type OutboundDocument struct {
	PaymentToken   string           `json:"payment_token"`
	ResultType     int              `json:"result_type"`
	Data           map[string]any   `json:"data"`
	EventName      string           `json:"event_name"`
	SiteURL        string           `json:"site_url"`
	OrderID        string           `json:"order_id"`
	Timestamp      string           `json:"timestamp"`
	Attendees      []string         `json:"attendees"`
	Coupon         string           `json:"coupon"`
	Total          string           `json:"total"`
	TotalFormatted string           `json:"total_formatted"`
	PaymentMethod  string           `json:"payment_method"`
	ReceiptName    string           `json:"receipt_name"`
	ReceiptFirst   string           `json:"receipt_first_name"`
	ReceiptLast    string           `json:"receipt_last_name"`
	Payment        CanonicalPayment `json:"payment"`
	Emails         []string         `json:"emails"`
	CustomHTML     string           `json:"custom_html,omitempty"`
}
