package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account kinds a marketplace user can have.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleSeller          Role = "seller"
	RoleServiceProvider Role = "service_provider"
	RoleDeliveryRider   Role = "delivery_rider"
	RoleAdmin           Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role")

var roles = []Role{RoleCustomer, RoleSeller, RoleServiceProvider, RoleDeliveryRider, RoleAdmin}

// Roles returns every valid role in declaration order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models an authenticated marketplace actor.
type User struct {
	ID         string    `json:"id"          yaml:"id"`
	Name       string    `json:"name"        yaml:"name"`
	Email      string    `json:"email,omitempty"  yaml:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"  yaml:"phone,omitempty"`
	Avatar     string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Role       Role      `json:"role"        yaml:"role"`
	IsVerified bool      `json:"is_verified" yaml:"is_verified"`
	CreatedAt  time.Time `json:"created_at"  yaml:"created_at"`
}
