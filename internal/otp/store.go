package otp

import (
	"context"
	"errors"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

// ErrChallengeNotFound is returned when no active challenge exists for an email.
var ErrChallengeNotFound = errors.New("verification challenge not found")

// ChallengeStore holds at most one active challenge per email. Put replaces
// any prior challenge; Delete consumes it.
type ChallengeStore interface {
	Put(ctx context.Context, challenge domain.VerificationChallenge) error
	Get(ctx context.Context, email string) (*domain.VerificationChallenge, error)
	Delete(ctx context.Context, email string) error
}
