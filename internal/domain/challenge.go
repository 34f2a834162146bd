package domain

import "time"

// VerificationChallenge is a short-lived one-time code bound to an email
// address. Only the bcrypt hash of the code is ever stored; a later issuance
// for the same email replaces the earlier challenge.
type VerificationChallenge struct {
	Email     string
	CodeHash  string
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its validity window.
func (c VerificationChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
