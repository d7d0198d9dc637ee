package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dvail/trackline/internal/domain/auth"
)

// ErrUnknownRoute is returned when a path is not in the route table.
var ErrUnknownRoute = errors.New("unknown route")

// AdminLookup answers admin membership for a user id.
type AdminLookup interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Guard decides the navigation outcome for a requested route. Every
// resolution re-checks identity and admin membership from scratch;
// nothing is cached across navigations since roles can change
// mid-session.
type Guard struct {
	auth   *auth.Store
	admins AdminLookup
	logger *slog.Logger
	routes map[string]Route
}

// NewGuard creates a guard over the application's route table.
func NewGuard(authStore *auth.Store, admins AdminLookup, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	routes := make(map[string]Route)
	for _, r := range Routes() {
		routes[r.Path] = r
	}
	return &Guard{auth: authStore, admins: admins, logger: logger, routes: routes}
}

// Resolve returns the final path for a navigation to the requested
// path: the target itself, the login page when identity is absent, or
// the dashboard when an admin requirement fails. Authorization failures
// never surface as errors; they fail closed to a redirect.
func (g *Guard) Resolve(ctx context.Context, path string) (string, error) {
	for hops := 0; hops < len(g.routes)+1; hops++ {
		route, ok := g.routes[path]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownRoute, path)
		}

		if route.RedirectTo != "" {
			path = route.RedirectTo
			continue
		}

		if !route.RequiresAuth {
			return route.Path, nil
		}

		user := g.auth.CurrentUser(ctx)
		if user == nil {
			return LoginPath, nil
		}

		if route.RequiresAdmin {
			isAdmin, err := g.admins.IsAdmin(ctx, user.ID)
			if err != nil {
				g.logger.Error("checking admin status", "user", user.ID, "error", err)
				return DashboardPath, nil
			}
			if !isAdmin {
				return DashboardPath, nil
			}
		}

		return route.Path, nil
	}
	return "", fmt.Errorf("%w: redirect cycle at %s", ErrUnknownRoute, path)
}
