package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// sectionsByRole lists the dashboard entries each role sees.
var sectionsByRole = map[domain.Role][]section{
	domain.RoleCustomer: {
		{Key: "listings", Title: "Browse listings", Path: "/listings"},
		{Key: "services", Title: "Book services", Path: "/services"},
		{Key: "deliveries", Title: "Track deliveries", Path: "/deliveries"},
	},
	domain.RoleSeller: {
		{Key: "my_listings", Title: "My listings", Path: "/listings/mine"},
		{Key: "orders", Title: "Orders", Path: "/orders"},
	},
	domain.RoleServiceProvider: {
		{Key: "my_services", Title: "My services", Path: "/services/mine"},
		{Key: "bookings", Title: "Bookings", Path: "/bookings"},
	},
	domain.RoleDeliveryRider: {
		{Key: "assigned_deliveries", Title: "Assigned deliveries", Path: "/deliveries/assigned"},
		{Key: "earnings", Title: "Earnings", Path: "/earnings"},
	},
}

var adminSections = []section{
	{Key: "approvals", Title: "Pending approvals", Path: "/admin/approvals"},
	{Key: "users", Title: "Users", Path: "/admin/users"},
	{Key: "listings", Title: "All listings", Path: "/admin/listings"},
}

var commonSections = []section{
	{Key: "profile", Title: "Profile", Path: "/profile"},
	{Key: "privacy", Title: "Privacy settings", Path: "/settings/privacy"},
}

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Dashboard serves the general landing area, shared by every role.
//
// @Summary      General dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dashboardResponse
// @Failure      401   {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	sections := append([]section{}, sectionsByRole[session.User.Role]...)
	if session.User.Role == domain.RoleAdmin {
		sections = append(sections, section{Key: "admin", Title: "Admin dashboard", Path: domain.RouteAdminDashboard})
	}
	sections = append(sections, commonSections...)

	return c.JSON(http.StatusOK, dashboardResponse{
		Area:     "dashboard",
		User:     session.User,
		Sections: sections,
	})
}

// AdminDashboard serves the admin landing area.
//
// @Summary      Admin dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dashboardResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) AdminDashboard(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if session.User.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Area:     "admin",
		User:     session.User,
		Sections: append(append([]section{}, adminSections...), commonSections...),
	})
}
