package verify

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ticketIDPattern matches issued hall-ticket identifiers: HT + 6 digits.
var ticketIDPattern = regexp.MustCompile(`^HT\d{6}$`)

// ValidTicketID reports whether the identifier has the issued format.
func ValidTicketID(id string) bool {
	return ticketIDPattern.MatchString(id)
}

// TokenSigner mints and validates signed verification tokens bound to a
// ticket id. The token rides inside the QR verification URL so a third party
// holding only the document can confirm it was issued here.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner builds a signer over a shared secret.
func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

// Claims describes the verification token payload.
type Claims struct {
	TicketID string `json:"ticket_id"`
	jwt.RegisteredClaims
}

// Sign issues a token for the ticket id. Verification tokens carry no expiry;
// the document they are embedded in outlives the application record.
func (s *TokenSigner) Sign(ticketID string) (string, error) {
	claims := &Claims{
		TicketID: ticketID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  ticketID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token signature and returns the bound ticket id.
func (s *TokenSigner) Verify(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.TicketID == "" {
		return "", fmt.Errorf("token missing ticket id")
	}
	return claims.TicketID, nil
}
