package credentials

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// Resolver authenticates identifier/secret pairs against a Table.
type Resolver struct {
	table *Table
}

// NewResolver returns a Resolver over table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve returns the profile of the first record whose email or phone equals
// identifier and whose secret matches. Comparison is exact: no trimming, no
// case folding. ok is false when nothing matches; the reason is not exposed.
//
// bcrypt only sees the first 72 bytes of its input and stops at a NUL, so a
// secret outside that domain never matches. It still pays one comparison.
func (r *Resolver) Resolve(identifier, secret string) (user domain.User, ok bool) {
	usable := validSecret(secret)
	candidate := []byte(secret)
	if !usable {
		candidate = nil
	}

	compared := false
	for _, rec := range r.table.records {
		if identifier == "" || (identifier != rec.Email && identifier != rec.Phone) {
			continue
		}
		compared = true
		if bcrypt.CompareHashAndPassword([]byte(rec.SecretHash), candidate) == nil && usable {
			return rec.Profile, true
		}
	}
	if !compared {
		// Unknown identifiers cost one comparison too.
		_ = bcrypt.CompareHashAndPassword(r.table.dummyHash, candidate)
	}
	return domain.User{}, false
}
