package domain

// Landing routes of the marketplace UI.
const (
	RouteLogin          = "/login"
	RouteDashboard      = "/dashboard"
	RouteAdminDashboard = "/admin/dashboard"
)

// LandingRoute picks where a freshly authenticated user goes. Only the role
// is consulted.
func LandingRoute(role Role) string {
	if role == RoleAdmin {
		return RouteAdminDashboard
	}
	return RouteDashboard
}
