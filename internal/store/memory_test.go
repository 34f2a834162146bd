package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

func pendingApp(ticketID string) *domain.Application {
	return &domain.Application{
		TicketID: ticketID,
		Name:     "A",
		Email:    "a@x.com",
		Phone:    "123",
		College:  "X",
		Course:   "CS",
		Status:   domain.StatusPending,
	}
}

func TestCreateAndGet(t *testing.T) {
	s := NewMemoryApplicationStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, pendingApp("HT000001")))

	got, err := s.Get(ctx, "HT000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Get(ctx, "HT999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsDuplicateTicketID(t *testing.T) {
	s := NewMemoryApplicationStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, pendingApp("HT000001")))
	err := s.Create(ctx, pendingApp("HT000001"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCompareAndSwapStatus(t *testing.T) {
	s := NewMemoryApplicationStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, pendingApp("HT000001")))

	ok, err := s.CompareAndSwapStatus(ctx, "HT000001", domain.StatusPending, domain.StatusProcessing)
	require.NoError(t, err)
	assert.True(t, ok)

	// the swap already happened; a second claim must lose
	ok, err = s.CompareAndSwapStatus(ctx, "HT000001", domain.StatusPending, domain.StatusProcessing)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.CompareAndSwapStatus(ctx, "HT999999", domain.StatusPending, domain.StatusProcessing)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompareAndSwapStatusSingleWinnerUnderContention(t *testing.T) {
	s := NewMemoryApplicationStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, pendingApp("HT000001")))

	const claims = 16
	var wg sync.WaitGroup
	wins := make(chan bool, claims)
	for i := 0; i < claims; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.CompareAndSwapStatus(ctx, "HT000001", domain.StatusPending, domain.StatusProcessing)
			assert.NoError(t, err)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one claim may win the pending->processing swap")
}

func TestMarkPaidRequiresProcessing(t *testing.T) {
	s := NewMemoryApplicationStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, pendingApp("HT000001")))

	err := s.MarkPaid(ctx, "HT000001", "/documents/HT000001.pdf", "pay_1")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CompareAndSwapStatus(ctx, "HT000001", domain.StatusPending, domain.StatusProcessing)
	require.NoError(t, err)
	require.NoError(t, s.MarkPaid(ctx, "HT000001", "/documents/HT000001.pdf", "pay_1"))

	got, err := s.Get(ctx, "HT000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, got.Status)
	assert.Equal(t, "/documents/HT000001.pdf", got.DocumentURL)
	assert.Equal(t, "pay_1", got.PaymentRef)
	require.NotNil(t, got.PaidAt)

	assert.ErrorIs(t, s.MarkPaid(ctx, "HT999999", "", ""), ErrNotFound)
}

func TestDeleteEvictsRecord(t *testing.T) {
	s := NewMemoryApplicationStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, pendingApp("HT000001")))

	require.NoError(t, s.Delete(ctx, "HT000001"))
	_, err := s.Get(ctx, "HT000001")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent record is a no-op
	require.NoError(t, s.Delete(ctx, "HT000001"))
}
