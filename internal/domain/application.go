package domain

import "time"

// ApplicationStatus enumerates lifecycle states for scholarship applications.
type ApplicationStatus string

const (
	// StatusPending means the record exists and payment is awaited.
	StatusPending ApplicationStatus = "PENDING"
	// StatusProcessing marks the window between a captured payment and a
	// finished hall-ticket render. Externally it is still reported as
	// pending; it exists so only one webhook delivery can win the
	// pending->paid race.
	StatusProcessing ApplicationStatus = "PROCESSING"
	// StatusPaid means the payment was captured and the document issued.
	StatusPaid ApplicationStatus = "PAID"
)

// Application is the aggregate for one scholarship application, keyed by its
// hall-ticket identifier.
type Application struct {
	TicketID    string
	Name        string
	Email       string
	Phone       string
	College     string
	Course      string
	Status      ApplicationStatus
	DocumentURL string
	PaymentRef  string
	PaymentURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PaidAt      *time.Time
}
