package store

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

// MemoryApplicationStore keeps application records in a process-local map.
// It is the default store when no Postgres DSN is configured and the backing
// store for tests. All mutations happen under one mutex, so each transition
// is atomic with respect to concurrent webhook deliveries.
type MemoryApplicationStore struct {
	mu   sync.Mutex
	apps map[string]domain.Application
}

// NewMemoryApplicationStore constructs an empty store.
func NewMemoryApplicationStore() *MemoryApplicationStore {
	return &MemoryApplicationStore{apps: make(map[string]domain.Application)}
}

// Create persists a new record.
func (s *MemoryApplicationStore) Create(ctx context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.TicketID]; ok {
		return ErrConflict
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	s.apps[app.TicketID] = *app
	return nil
}

// Get returns a copy of the record.
func (s *MemoryApplicationStore) Get(ctx context.Context, ticketID string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[ticketID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := app
	return &copied, nil
}

// CompareAndSwapStatus flips status atomically.
func (s *MemoryApplicationStore) CompareAndSwapStatus(ctx context.Context, ticketID string, from, to domain.ApplicationStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[ticketID]
	if !ok || app.Status != from {
		return false, nil
	}
	app.Status = to
	app.UpdatedAt = time.Now()
	s.apps[ticketID] = app
	return true, nil
}

// MarkPaid finalizes a PROCESSING record as PAID.
func (s *MemoryApplicationStore) MarkPaid(ctx context.Context, ticketID, documentURL, paymentRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[ticketID]
	if !ok {
		return ErrNotFound
	}
	if app.Status != domain.StatusProcessing {
		return ErrConflict
	}
	now := time.Now()
	app.Status = domain.StatusPaid
	app.DocumentURL = documentURL
	app.PaymentRef = paymentRef
	app.PaidAt = &now
	app.UpdatedAt = now
	s.apps[ticketID] = app
	return nil
}

// SetPaymentURL records the hosted payment link.
func (s *MemoryApplicationStore) SetPaymentURL(ctx context.Context, ticketID, paymentURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[ticketID]
	if !ok {
		return ErrNotFound
	}
	app.PaymentURL = paymentURL
	app.UpdatedAt = time.Now()
	s.apps[ticketID] = app
	return nil
}

// Delete evicts the record.
func (s *MemoryApplicationStore) Delete(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.apps, ticketID)
	return nil
}
