package payment

import "context"

// IntentRequest describes a hosted payment-link request. TicketID travels in
// the notes metadata and must be echoed back verbatim by the gateway on
// completion.
type IntentRequest struct {
	TicketID    string
	AmountPaise int64
	Currency    string
	Description string
	Name        string
	Email       string
	Phone       string
}

// PaymentLink is the gateway-hosted checkout reference.
type PaymentLink struct {
	ID  string
	URL string
}

// Gateway creates hosted payment requests whose outcomes arrive later via an
// authenticated webhook.
type Gateway interface {
	CreatePaymentLink(ctx context.Context, req IntentRequest) (*PaymentLink, error)
}
