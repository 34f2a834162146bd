package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Verifier issues and checks one-time numeric codes keyed by email. Codes
// are bcrypt-hashed at rest and consumed on first successful check.
type Verifier struct {
	store      ChallengeStore
	ttl        time.Duration
	bcryptCost int
}

// NewVerifier constructs a verifier over the given challenge store.
func NewVerifier(store ChallengeStore, ttl time.Duration, bcryptCost int) *Verifier {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Verifier{store: store, ttl: ttl, bcryptCost: bcryptCost}
}

// Issue generates a uniformly random 6-digit code, stores it as the sole
// active challenge for the email and returns it for dispatch.
func (v *Verifier) Issue(ctx context.Context, email string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), v.bcryptCost)
	if err != nil {
		return "", err
	}
	challenge := domain.VerificationChallenge{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(v.ttl),
	}
	if err := v.store.Put(ctx, challenge); err != nil {
		return "", err
	}
	return code, nil
}

// Check compares the submitted code against the active challenge. On match
// the challenge is consumed and true is returned; on mismatch, absence or
// expiry it returns false and leaves any existing challenge untouched.
func (v *Verifier) Check(ctx context.Context, email, submitted string) (bool, error) {
	challenge, err := v.store.Get(ctx, email)
	if errors.Is(err, ErrChallengeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(submitted)) != nil {
		return false, nil
	}
	if err := v.store.Delete(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
