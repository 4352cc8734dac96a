package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-api/internal/core/domain"
)

func serveDashboard(t *testing.T, fn func(*DashboardHandler, echo.Context) error, role domain.Role) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set("session", &domain.Session{ID: "s", User: domain.User{ID: "1", Role: role}})
	return rec, fn(NewDashboardHandler(), c)
}

func TestDashboard_EveryRole(t *testing.T) {
	for _, role := range domain.Roles() {
		rec, err := serveDashboard(t, (*DashboardHandler).Dashboard, role)
		if err != nil {
			t.Fatalf("%s: handler error: %v", role, err)
		}

		var resp dashboardResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Area != "dashboard" || resp.User.Role != role {
			t.Fatalf("%s: unexpected response %+v", role, resp)
		}
		if len(resp.Sections) <= len(commonSections) {
			t.Fatalf("%s: expected role specific sections", role)
		}
	}
}

func TestAdminDashboard_Admin(t *testing.T) {
	rec, err := serveDashboard(t, (*DashboardHandler).AdminDashboard, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Area != "admin" || resp.Sections[0].Key != "approvals" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAdminDashboard_OtherRoles(t *testing.T) {
	for _, role := range domain.Roles() {
		if role == domain.RoleAdmin {
			continue
		}
		if _, err := serveDashboard(t, (*DashboardHandler).AdminDashboard, role); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", role, err)
		}
	}
}
