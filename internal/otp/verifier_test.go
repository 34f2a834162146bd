package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hallticket-service/internal/domain"
)

func newTestVerifier(t *testing.T) (*Verifier, *MemoryChallengeStore) {
	t.Helper()
	store := NewMemoryChallengeStore()
	// minimum bcrypt cost keeps the tests fast
	return NewVerifier(store, 10*time.Minute, 4), store
}

func TestIssueReturnsSixDigitCode(t *testing.T) {
	verifier, _ := newTestVerifier(t)

	code, err := verifier.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, code, 6)
	assert.Regexp(t, `^[1-9]\d{5}$`, code)
}

func TestCheckConsumesChallenge(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()

	code, err := verifier.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	ok, err := verifier.Check(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.True(t, ok)

	// single use: the correct value no longer validates
	ok, err = verifier.Check(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckWrongCodeLeavesChallengeIntact(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()

	code, err := verifier.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	ok, err := verifier.Check(ctx, "a@x.com", "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = verifier.Check(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReissueInvalidatesPriorCode(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	ctx := context.Background()

	first, err := verifier.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := verifier.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	ok, err := verifier.Check(ctx, "a@x.com", first)
	require.NoError(t, err)
	if first != second {
		assert.False(t, ok, "first code must be invalid once the second is issued")
	}

	ok, err = verifier.Check(ctx, "a@x.com", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckUnknownEmail(t *testing.T) {
	verifier, _ := newTestVerifier(t)

	ok, err := verifier.Check(context.Background(), "nobody@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredChallengeFailsCheck(t *testing.T) {
	store := NewMemoryChallengeStore()
	verifier := NewVerifier(store, 10*time.Minute, 4)
	ctx := context.Background()

	code, err := verifier.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	challenge, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, domain.VerificationChallenge{
		Email:     "a@x.com",
		CodeHash:  challenge.CodeHash,
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	ok, err := verifier.Check(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}
