package domain

import "errors"

var (
	// ErrInvalidCredentials is the only authentication failure. It never says
	// whether the identifier or the secret was wrong.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionNotFound     = errors.New("session not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// CredentialRecord binds the two login identifiers of an account to its secret
// and profile. Secret is only used to seed a table; SecretHash is what gets
// compared at login.
type CredentialRecord struct {
	Email      string `json:"email" yaml:"email"`
	Phone      string `json:"phone" yaml:"phone"`
	Secret     string `json:"-" yaml:"secret,omitempty"`
	SecretHash string `json:"-" yaml:"secret_hash,omitempty"`
	Profile    User   `json:"profile" yaml:"profile"`
}
