package events

import (
	"time"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationCreated EventType = "application_created"
	EventDocumentIssued     EventType = "document_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationCreatedPayload payload.
type ApplicationCreatedPayload struct {
	Email      string                   `json:"email"`
	College    string                   `json:"college"`
	Course     string                   `json:"course"`
	Status     domain.ApplicationStatus `json:"status"`
	PaymentURL string                   `json:"payment_url"`
}

// DocumentIssuedPayload payload.
type DocumentIssuedPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DocumentURL string `json:"document_url"`
	PaymentRef  string `json:"payment_ref"`
}
