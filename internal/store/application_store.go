package store

import (
	"context"
	"errors"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

// ErrNotFound is returned when no application exists for a ticket id.
var ErrNotFound = errors.New("application not found")

// ErrConflict is returned when creating a record whose ticket id is taken.
var ErrConflict = errors.New("ticket id already exists")

// ApplicationStore owns application records keyed by ticket id. Every
// transition is a single atomic check-and-set against the record so that
// concurrent webhook deliveries for the same ticket cannot both win.
type ApplicationStore interface {
	// Create persists a new record. ErrConflict if the ticket id is live.
	Create(ctx context.Context, app *domain.Application) error

	// Get returns a copy of the record or ErrNotFound.
	Get(ctx context.Context, ticketID string) (*domain.Application, error)

	// CompareAndSwapStatus flips status from->to atomically. It returns
	// false when the record is absent or its status is not `from`.
	CompareAndSwapStatus(ctx context.Context, ticketID string, from, to domain.ApplicationStatus) (bool, error)

	// MarkPaid sets PAID plus document and payment references, guarded on
	// the record currently being PROCESSING.
	MarkPaid(ctx context.Context, ticketID, documentURL, paymentRef string) error

	// SetPaymentURL records the hosted payment link on a pending record.
	SetPaymentURL(ctx context.Context, ticketID, paymentURL string) error

	// Delete evicts the record. Deleting an absent record is a no-op.
	Delete(ctx context.Context, ticketID string) error
}
