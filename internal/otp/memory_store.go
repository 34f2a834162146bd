package otp

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

// MemoryChallengeStore keeps challenges in a process-local map. Expired
// entries are dropped lazily on read.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]domain.VerificationChallenge
}

// NewMemoryChallengeStore constructs an empty store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{challenges: make(map[string]domain.VerificationChallenge)}
}

// Put stores the challenge, replacing any prior one for the same email.
func (s *MemoryChallengeStore) Put(ctx context.Context, challenge domain.VerificationChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.Email] = challenge
	return nil
}

// Get returns the active challenge for the email.
func (s *MemoryChallengeStore) Get(ctx context.Context, email string) (*domain.VerificationChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.challenges[email]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	if challenge.Expired(time.Now()) {
		delete(s.challenges, email)
		return nil, ErrChallengeNotFound
	}
	copied := challenge
	return &copied, nil
}

// Delete consumes the challenge.
func (s *MemoryChallengeStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, email)
	return nil
}
