package credentials

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/marketplace/identity-api/internal/core/domain"
)

func newDemoResolver(t *testing.T) (*Resolver, []domain.CredentialRecord) {
	t.Helper()
	records := DemoRecords()
	table, err := NewTable(records, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return NewResolver(table), records
}

func TestResolve_EveryRecordByEmailAndPhone(t *testing.T) {
	r, records := newDemoResolver(t)

	for _, rec := range records {
		for _, ident := range []string{rec.Email, rec.Phone} {
			user, ok := r.Resolve(ident, rec.Secret)
			if !ok {
				t.Fatalf("Resolve(%q) failed", ident)
			}
			if user.ID != rec.Profile.ID {
				t.Fatalf("Resolve(%q) returned id %s, want %s", ident, user.ID, rec.Profile.ID)
			}
		}
	}
}

func TestResolve_WrongSecret(t *testing.T) {
	r, records := newDemoResolver(t)

	for _, rec := range records {
		for _, secret := range []string{"wrongpass", rec.Secret + " ", "", records[0].Secret + "x"} {
			if _, ok := r.Resolve(rec.Email, secret); ok {
				t.Fatalf("Resolve(%q, %q) should fail", rec.Email, secret)
			}
		}
	}
}

func TestResolve_SecretOfAnotherAccount(t *testing.T) {
	r, _ := newDemoResolver(t)

	if _, ok := r.Resolve("customer@demo.com", "admin123"); ok {
		t.Fatalf("secret of another account must not match")
	}
}

func TestResolve_UnknownIdentifier(t *testing.T) {
	r, _ := newDemoResolver(t)

	for _, ident := range []string{"ghost@demo.com", "", "+0000000000", "customer@demo.com "} {
		if _, ok := r.Resolve(ident, "customer123"); ok {
			t.Fatalf("Resolve(%q) should fail", ident)
		}
	}
}

func TestResolve_ExactMatchOnly(t *testing.T) {
	r, _ := newDemoResolver(t)

	if _, ok := r.Resolve("Customer@Demo.com", "customer123"); ok {
		t.Fatalf("identifier match must be case sensitive")
	}
	if _, ok := r.Resolve("customer@demo.com", "Customer123"); ok {
		t.Fatalf("secret match must be case sensitive")
	}
	if _, ok := r.Resolve("+1 234 567 890", "customer123"); ok {
		t.Fatalf("phone must not be normalized")
	}
}

func TestResolve_SecretsBcryptCannotDistinguish(t *testing.T) {
	r, records := newDemoResolver(t)

	for _, rec := range records {
		repeated := strings.Repeat(rec.Secret+"\x00", MaxSecretLen/(len(rec.Secret)+1)+1)
		for _, secret := range []string{
			repeated,
			rec.Secret + "\x00",
			rec.Secret + "\x00" + rec.Secret,
		} {
			if _, ok := r.Resolve(rec.Email, secret); ok {
				t.Fatalf("Resolve(%q, %q) must fail", rec.Email, secret)
			}
		}
	}

	long := strings.Repeat("a", MaxSecretLen)
	table, err := NewTable([]domain.CredentialRecord{{
		Email:   "long@demo.com",
		Secret:  long,
		Profile: domain.User{ID: "l", Role: domain.RoleCustomer},
	}}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	lr := NewResolver(table)
	if _, ok := lr.Resolve("long@demo.com", long); !ok {
		t.Fatalf("a %d-byte secret must still resolve", MaxSecretLen)
	}
	if _, ok := lr.Resolve("long@demo.com", long+"b"); ok {
		t.Fatalf("bytes past %d must not be ignored", MaxSecretLen)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r, _ := newDemoResolver(t)

	first, ok1 := r.Resolve("seller@demo.com", "seller123")
	second, ok2 := r.Resolve("seller@demo.com", "seller123")
	if !ok1 || !ok2 || first != second {
		t.Fatalf("expected identical results, got %+v/%v and %+v/%v", first, ok1, second, ok2)
	}

	_, bad1 := r.Resolve("seller@demo.com", "nope")
	_, bad2 := r.Resolve("seller@demo.com", "nope")
	if bad1 || bad2 {
		t.Fatalf("expected failure both times")
	}
}

func TestResolve_Scenarios(t *testing.T) {
	r, _ := newDemoResolver(t)

	user, ok := r.Resolve("customer@demo.com", "customer123")
	if !ok || user.Role != domain.RoleCustomer {
		t.Fatalf("customer login: %+v %v", user, ok)
	}
	if got := domain.LandingRoute(user.Role); got != domain.RouteDashboard {
		t.Fatalf("customer lands on %s", got)
	}

	user, ok = r.Resolve("admin@demo.com", "admin123")
	if !ok || user.Role != domain.RoleAdmin {
		t.Fatalf("admin login: %+v %v", user, ok)
	}
	if got := domain.LandingRoute(user.Role); got != domain.RouteAdminDashboard {
		t.Fatalf("admin lands on %s", got)
	}

	if _, ok := r.Resolve("customer@demo.com", "wrongpass"); ok {
		t.Fatalf("wrong password must fail")
	}
}

func TestResolve_AlternateTable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	table, err := NewTable([]domain.CredentialRecord{{
		Phone:      "0812345678",
		SecretHash: string(hash),
		Profile:    domain.User{ID: "r-1", Name: "Rider", Role: domain.RoleDeliveryRider},
	}}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	r := NewResolver(table)

	user, ok := r.Resolve("0812345678", "hunter2")
	if !ok || user.ID != "r-1" {
		t.Fatalf("unexpected result %+v %v", user, ok)
	}
	if user.Phone != "0812345678" {
		t.Fatalf("expected profile phone to be filled from the record, got %q", user.Phone)
	}
	if _, ok := r.Resolve("", "hunter2"); ok {
		t.Fatalf("empty identifier must not match a record without email")
	}
	if _, ok := r.Resolve("customer@demo.com", "customer123"); ok {
		t.Fatalf("demo accounts must not leak into an alternate table")
	}
}
