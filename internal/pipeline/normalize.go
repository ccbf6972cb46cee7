package pipeline

import (
	"strings"

	"tixhook/internal/models"
)

// Gateways return the same semantic fields under wildly different shapes: a
// card processor nests them under charge.source or token.card, while the
// legacy checkout gateway uses flat uppercase keys. Each output field is
// resolved through an ordered fallback chain, most specific shape first.
var paymentChains = map[string]chain{
	"address_line1": {p("charge", "source", "address_line1"), p("token", "card", "address_line1"), p("checkout", "SHIPTOSTREET")},
	"address_line2": {p("charge", "source", "address_line2"), p("token", "card", "address_line2")},
	"address_state": {p("charge", "source", "address_state"), p("token", "card", "address_state"), p("checkout", "SHIPTOSTATE")},
	"address_city":  {p("charge", "source", "address_city"), p("token", "card", "address_city"), p("checkout", "SHIPTOCITY")},
	"address_zip":   {p("charge", "source", "address_zip"), p("token", "card", "address_zip"), p("checkout", "SHIPTOZIP")},
	"address_country": {
		p("charge", "source", "address_country"), p("charge", "source", "country"),
		p("token", "card", "address_country"), p("token", "card", "country"),
		p("checkout", "SHIPTOCOUNTRYCODE"), p("checkout", "COUNTRYCODE"),
	},
	"card_last4":    {p("charge", "source", "last4"), p("token", "card", "last4")},
	"exp_month":     {p("charge", "source", "exp_month"), p("token", "card", "exp_month")},
	"exp_year":      {p("charge", "source", "exp_year"), p("token", "card", "exp_year")},
	"zip_check":     {p("charge", "source", "address_zip_check"), p("token", "card", "address_zip_check")},
	"cvc_check":     {p("charge", "source", "cvc_check"), p("token", "card", "cvc_check")},
	"address_check": {p("charge", "source", "address_line1_check"), p("token", "card", "address_line1_check")},
	"fingerprint":   {p("charge", "source", "fingerprint"), p("token", "card", "fingerprint")},
	"funding_type":  {p("charge", "source", "funding"), p("token", "card", "funding"), p("checkout", "PAYMENTINFO_0_PAYMENTTYPE")},
	"brand":         {p("charge", "source", "brand"), p("token", "card", "brand")},
	"risk_level":    {p("charge", "outcome", "risk_level")},
	"client_ip":     {p("token", "client_ip")},
	"currency":      {p("charge", "currency"), p("checkout", "PAYMENTINFO_0_CURRENCYCODE")},
	"email":         {p("charge", "receipt_email"), p("token", "email"), p("checkout", "EMAIL")},
}

// NormalizePayment extracts the canonical payment record from the raw gateway
// blob. Every field is total: unresolved chains yield "". The already
// flattened tickets serve only as a last-resort email fallback.
func NormalizePayment(raw map[string]any, tickets []models.CanonicalTicket) models.CanonicalPayment {
	t := Tree(raw)

	email := paymentChains["email"].resolve(t)
	if email == "" {
		for _, ticket := range tickets {
			if e := ticket["tix_email"]; e != "" {
				email = e
				break
			}
		}
	}

	return models.CanonicalPayment{
		TransactionID:  t.Str("transaction_id"),
		AddressLine1:   paymentChains["address_line1"].resolve(t),
		AddressLine2:   paymentChains["address_line2"].resolve(t),
		AddressState:   paymentChains["address_state"].resolve(t),
		AddressCity:    paymentChains["address_city"].resolve(t),
		AddressCountry: paymentChains["address_country"].resolve(t),
		AddressZip:     paymentChains["address_zip"].resolve(t),
		CardLast4:      paymentChains["card_last4"].resolve(t),
		ExpMonth:       paymentChains["exp_month"].resolve(t),
		ExpYear:        paymentChains["exp_year"].resolve(t),
		ZipCheck:       paymentChains["zip_check"].resolve(t),
		CVCCheck:       paymentChains["cvc_check"].resolve(t),
		AddressCheck:   paymentChains["address_check"].resolve(t),
		Email:          email,
		Fingerprint:    paymentChains["fingerprint"].resolve(t),
		FundingType:    paymentChains["funding_type"].resolve(t),
		Brand:          paymentChains["brand"].resolve(t),
		RiskLevel:      paymentChains["risk_level"].resolve(t),
		ClientIP:       paymentChains["client_ip"].resolve(t),
		Currency:       strings.ToUpper(paymentChains["currency"].resolve(t)),
	}
}

var payerNameChain = chain{p("charge", "source", "name"), p("token", "card", "name"), p("checkout", "SHIPTONAME")}

// PayerName resolves the purchaser's name from the gateway blob. A name from
// the primary chain is split on spaces into first/last (middle tokens dropped).
// Failing that, the checkout FIRSTNAME/LASTNAME pair is used as-is. found is
// false when neither yields anything, and the ticket-derived receipt fields
// should stand.
func PayerName(raw map[string]any) (first, last, full string, found bool) {
	t := Tree(raw)

	if name := payerNameChain.resolve(t); name != "" {
		parts := strings.Fields(name)
		if len(parts) > 0 {
			return parts[0], parts[len(parts)-1], name, true
		}
	}

	if f := t.Str("checkout", "FIRSTNAME"); f != "" {
		l := t.Str("checkout", "LASTNAME")
		return f, l, strings.TrimSpace(f + " " + l), true
	}

	return "", "", "", false
}
