package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Webhook event kinds that complete a payment. All other kinds are
// acknowledged and ignored.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentLinkPaid = "payment_link.paid"
	SignatureHeader      = "X-Webhook-Signature"
	ticketIDNoteKey      = "ticket_id"
)

// Event is the parsed, provider-agnostic shape of a webhook delivery.
type Event struct {
	Kind       string
	PaymentRef string
	TicketID   string
}

// Captures reports whether the event kind signals a completed payment.
func (e Event) Captures() bool {
	return e.Kind == EventPaymentCaptured || e.Kind == EventPaymentLinkPaid
}

// VerifySignature computes an HMAC-SHA256 over the exact raw body and
// compares it to the hex signature header in constant time. Missing inputs
// fail closed.
func VerifySignature(body []byte, signature, secret string) bool {
	if len(body) == 0 || signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		PaymentLink struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment_link"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID    string            `json:"id"`
	Notes map[string]string `json:"notes"`
}

// ParseEvent decodes an authenticated webhook body. The ticket id comes from
// the notes metadata echoed back by the gateway; it is empty when the event
// does not reference a known application.
func ParseEvent(body []byte) (*Event, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	if envelope.Event == "" {
		return nil, fmt.Errorf("webhook payload missing event kind")
	}

	event := &Event{Kind: envelope.Event}
	for _, entity := range []paymentEntity{
		envelope.Payload.Payment.Entity,
		envelope.Payload.PaymentLink.Entity,
	} {
		if entity.ID != "" && event.PaymentRef == "" {
			event.PaymentRef = entity.ID
		}
		if id, ok := entity.Notes[ticketIDNoteKey]; ok && event.TicketID == "" {
			event.TicketID = id
		}
	}
	return event, nil
}
