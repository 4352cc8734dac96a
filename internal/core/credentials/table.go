// Package credentials holds the fixed table of known accounts and the
// resolver that matches a login attempt against it.
package credentials

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// MaxSecretLen is the longest secret bcrypt can tell apart from its prefix.
const MaxSecretLen = 72

// validSecret reports whether bcrypt compares secret byte for byte.
func validSecret(secret string) bool {
	return len(secret) <= MaxSecretLen && !strings.ContainsRune(secret, 0)
}

// Table is an immutable, ordered set of credential records. Build it once with
// NewTable and share it; nothing mutates it afterwards.
type Table struct {
	records   []domain.CredentialRecord
	dummyHash []byte
}

// NewTable validates records and returns a table holding them in input order.
// Records that only carry a plaintext Secret are hashed with bcrypt at the
// given cost; the plaintext is not retained. Precomputed hashes must use the
// same cost, so every comparison takes the same time. A cost of 0 means
// bcrypt.DefaultCost.
func NewTable(records []domain.CredentialRecord, cost int) (*Table, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	seenIDs := make(map[string]struct{}, len(records))
	seenIdentifiers := make(map[string]struct{}, 2*len(records))
	out := make([]domain.CredentialRecord, 0, len(records))

	for i, r := range records {
		if r.Profile.ID == "" {
			return nil, fmt.Errorf("record %d: profile id is required", i)
		}
		if !r.Profile.Role.Valid() {
			return nil, fmt.Errorf("record %d: %w: %q", i, domain.ErrInvalidRole, r.Profile.Role)
		}
		if r.Email == "" && r.Phone == "" {
			return nil, fmt.Errorf("record %d: email or phone is required", i)
		}
		if _, dup := seenIDs[r.Profile.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate profile id %q", i, r.Profile.ID)
		}
		seenIDs[r.Profile.ID] = struct{}{}

		for _, ident := range []string{r.Email, r.Phone} {
			if ident == "" {
				continue
			}
			if _, dup := seenIdentifiers[ident]; dup {
				return nil, fmt.Errorf("record %d: %w: %q", i, domain.ErrDuplicateIdentifier, ident)
			}
			seenIdentifiers[ident] = struct{}{}
		}

		if r.SecretHash == "" {
			if r.Secret == "" {
				return nil, fmt.Errorf("record %d: secret or secret_hash is required", i)
			}
			if !validSecret(r.Secret) {
				return nil, fmt.Errorf("record %d: secret must be at most %d bytes without NUL", i, MaxSecretLen)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(r.Secret), cost)
			if err != nil {
				return nil, fmt.Errorf("record %d: hash secret: %w", i, err)
			}
			r.SecretHash = string(hash)
		} else {
			hashCost, err := bcrypt.Cost([]byte(r.SecretHash))
			if err != nil {
				return nil, fmt.Errorf("record %d: secret_hash: %w", i, err)
			}
			if hashCost != cost {
				return nil, fmt.Errorf("record %d: secret_hash cost %d, table uses %d", i, hashCost, cost)
			}
		}
		r.Secret = ""

		if r.Profile.Email == "" {
			r.Profile.Email = r.Email
		}
		if r.Profile.Phone == "" {
			r.Profile.Phone = r.Phone
		}
		out = append(out, r)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("unknown-identifier"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder secret: %w", err)
	}

	return &Table{records: out, dummyHash: dummy}, nil
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns a copy of the records in table order.
func (t *Table) Records() []domain.CredentialRecord {
	out := make([]domain.CredentialRecord, len(t.records))
	copy(out, t.records)
	return out
}
