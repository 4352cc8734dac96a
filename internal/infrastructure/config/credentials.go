package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marketplace/identity-api/internal/core/domain"
)

type credentialsFile struct {
	Accounts []domain.CredentialRecord `yaml:"accounts"`
}

// LoadCredentials reads credential records from a YAML file of the form
//
//	accounts:
//	  - email: customer@demo.com
//	    phone: "+1234567890"
//	    secret_hash: $2a$10$...
//	    profile: {id: "1", name: John Customer, role: customer, is_verified: true}
//
// Either secret or secret_hash may be given per account; a secret_hash must use
// the configured BCRYPT_COST.
func LoadCredentials(path string) ([]domain.CredentialRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return ParseCredentials(raw)
}

// ParseCredentials decodes the YAML document accepted by LoadCredentials.
func ParseCredentials(raw []byte) ([]domain.CredentialRecord, error) {
	var f credentialsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("parse credentials file: no accounts")
	}
	return f.Accounts, nil
}
