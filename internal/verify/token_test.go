package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTicketID(t *testing.T) {
	assert.True(t, ValidTicketID("HT123456"))
	assert.False(t, ValidTicketID("HT12345"))
	assert.False(t, ValidTicketID("HT1234567"))
	assert.False(t, ValidTicketID("XX123456"))
	assert.False(t, ValidTicketID("HT12345a"))
	assert.False(t, ValidTicketID(""))
}

func TestTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret")

	token, err := signer.Sign("HT123456")
	require.NoError(t, err)

	ticketID, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "HT123456", ticketID)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, err := NewTokenSigner("secret-a").Sign("HT123456")
	require.NoError(t, err)

	_, err = NewTokenSigner("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenSigner("secret").Verify("not.a.token")
	assert.Error(t, err)
}
