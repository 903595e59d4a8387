// Package token issues attendee credentials. A credential is an opaque,
// URL-safe random string; it carries no attendee information and is never
// derived from one.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes sets credential entropy at 72 bits. The floor for collision
// resistance over an event's lifetime is 48 bits; nine bytes also encode to
// twelve base64 characters with no padding to strip.
const tokenBytes = 9

// Issuer generates credentials. Generation is pure: uniqueness is enforced
// by the attendee store rejecting a colliding insert, and the registration
// service retries.
type Issuer struct{}

func NewIssuer() *Issuer { return &Issuer{} }

// Issue returns a fresh credential, safe to embed unescaped in a query
// string.
func (i *Issuer) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
