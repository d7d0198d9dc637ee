package nav

// Well-known paths used as guard outcomes.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	ProfilePath   = "/profile"
	AdminPath     = "/admin"
	RootPath      = "/"
)

// Route describes one navigable path and its access requirements. A
// non-empty RedirectTo makes the route a pure redirect; the target's
// own requirements are evaluated after following it.
type Route struct {
	Path          string
	Name          string
	RequiresAuth  bool
	RequiresAdmin bool
	RedirectTo    string
}

// Routes returns the application's route table.
func Routes() []Route {
	return []Route{
		{Path: RootPath, RedirectTo: DashboardPath},
		{Path: LoginPath, Name: "Login"},
		{Path: DashboardPath, Name: "Dashboard", RequiresAuth: true},
		{Path: ProfilePath, Name: "Profile", RequiresAuth: true},
		{Path: AdminPath, Name: "AdminDashboard", RequiresAuth: true, RequiresAdmin: true},
	}
}
