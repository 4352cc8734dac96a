package credentials

import (
	"time"

	"github.com/marketplace/identity-api/internal/core/domain"
)

var demoCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DemoRecords returns the built-in demo accounts, one per role.
func DemoRecords() []domain.CredentialRecord {
	return []domain.CredentialRecord{
		demoRecord("1", "John Customer", "customer@demo.com", "+1234567890", "customer123", domain.RoleCustomer),
		demoRecord("2", "Jane Seller", "seller@demo.com", "+1234567891", "seller123", domain.RoleSeller),
		demoRecord("3", "Mike Provider", "provider@demo.com", "+1234567892", "provider123", domain.RoleServiceProvider),
		demoRecord("4", "Sarah Rider", "rider@demo.com", "+1234567893", "rider123", domain.RoleDeliveryRider),
		demoRecord("5", "Admin User", "admin@demo.com", "+1234567894", "admin123", domain.RoleAdmin),
	}
}

func demoRecord(id, name, email, phone, secret string, role domain.Role) domain.CredentialRecord {
	return domain.CredentialRecord{
		Email:  email,
		Phone:  phone,
		Secret: secret,
		Profile: domain.User{
			ID:         id,
			Name:       name,
			Email:      email,
			Phone:      phone,
			Role:       role,
			IsVerified: true,
			CreatedAt:  demoCreatedAt,
		},
	}
}
