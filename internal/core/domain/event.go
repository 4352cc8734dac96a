package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// LoginOutcome is the result of a single login attempt.
type LoginOutcome string

const (
	LoginSucceeded LoginOutcome = "succeeded"
	LoginFailed    LoginOutcome = "failed"
	LoggedOut      LoginOutcome = "logged_out"
)

// LoginEvent is the audit record of an authentication attempt. The identifier
// is stored as a fingerprint only.
type LoginEvent struct {
	Fingerprint string
	Outcome     LoginOutcome
	UserID      string // empty on failure
	Role        Role   // empty on failure
	SessionID   string
	IP          string
	UserAgent   string
	Timestamp   time.Time
}

// Fingerprint returns a stable, non-reversible tag for an identifier so logs
// and audit records can correlate attempts without storing emails or phones.
func Fingerprint(identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return hex.EncodeToString(sum[:8])
}
