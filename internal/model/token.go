package model

import (
	"strings"
	"time"
)

// TokenKind is the one-time-password style of a token
type TokenKind string

const (
	// TokenKindHOTP is a counter based token
	TokenKindHOTP TokenKind = "HOTP"

	// TokenKindTOTP is a time based token
	TokenKindTOTP TokenKind = "TOTP"
)

// String returns the string representation of TokenKind
func (k TokenKind) String() string {
	return string(k)
}

// IsTimeBased returns true for kinds whose code rolls over on a timer.
// Cells use it to decide whether the outer progress decoration is shown.
func (k TokenKind) IsTimeBased() bool {
	return k == TokenKindTOTP
}

// Code is a precomputed code value together with its validity window
type Code struct {
	Value string
	From  time.Time
	Until time.Time
}

// Valid reports whether the code is usable at the given instant
func (c Code) Valid(now time.Time) bool {
	if c.Value == "" {
		return false
	}
	if !c.From.IsZero() && now.Before(c.From) {
		return false
	}
	return c.Until.IsZero() || now.Before(c.Until)
}

// CodeSource produces the current code of a token. Code generation lives
// outside this module; the grid only reads the result.
type CodeSource interface {
	CurrentCode(now time.Time) (Code, error)
}

// Token is a single OTP credential entry
type Token struct {
	ID     string    `json:"id"`
	Issuer string    `json:"issuer"`
	Label  string    `json:"label"`
	Locked bool      `json:"locked"`
	Kind   TokenKind `json:"kind"`
	Image  string    `json:"image,omitempty"` // image locator (path or URL)

	Codes CodeSource `json:"-"`
}

// CurrentCode asks the token's code source for the code valid at now.
// Returns false when the token has no source or the source failed.
func (t *Token) CurrentCode(now time.Time) (Code, bool) {
	if t == nil || t.Codes == nil {
		return Code{}, false
	}
	code, err := t.Codes.CurrentCode(now)
	if err != nil {
		return Code{}, false
	}
	return code, true
}

// GetDisplayTitle returns issuer, label, or ID in order of preference
func (t *Token) GetDisplayTitle() string {
	if issuer := strings.TrimSpace(t.Issuer); issuer != "" {
		return issuer
	}
	if label := strings.TrimSpace(t.Label); label != "" {
		return label
	}
	return t.ID
}
