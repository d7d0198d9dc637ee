package nav_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/dvail/trackline/internal/gateway/mocks"
	"github.com/dvail/trackline/internal/nav"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T, user *auth.User, userErr error) (*nav.Guard, *mocks.AdminGateway) {
	t.Helper()

	authGw := &mocks.AuthGateway{}
	authGw.On("GetUser", context.Background()).Return(user, userErr)
	admins := &mocks.AdminGateway{}

	store := auth.NewStore(authGw, nil)
	return nav.NewGuard(store, admins, nil), admins
}

func TestGuard_PublicRouteProceeds(t *testing.T) {
	guard, _ := newGuard(t, nil, nil)

	final, err := guard.Resolve(context.Background(), nav.LoginPath)
	require.NoError(t, err)
	require.Equal(t, nav.LoginPath, final)
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	guard, _ := newGuard(t, nil, nil)

	final, err := guard.Resolve(context.Background(), nav.DashboardPath)
	require.NoError(t, err)
	require.Equal(t, nav.LoginPath, final)
}

func TestGuard_AuthenticatedProceeds(t *testing.T) {
	guard, _ := newGuard(t, &auth.User{ID: "u1"}, nil)

	final, err := guard.Resolve(context.Background(), nav.ProfilePath)
	require.NoError(t, err)
	require.Equal(t, nav.ProfilePath, final)
}

func TestGuard_NonAdminRedirectsToDashboard(t *testing.T) {
	guard, admins := newGuard(t, &auth.User{ID: "u1"}, nil)
	admins.On("IsAdmin", context.Background(), "u1").Return(false, nil)

	final, err := guard.Resolve(context.Background(), nav.AdminPath)
	require.NoError(t, err, "authorization failures never surface as errors")
	require.Equal(t, nav.DashboardPath, final)
}

func TestGuard_AdminProceeds(t *testing.T) {
	guard, admins := newGuard(t, &auth.User{ID: "u1"}, nil)
	admins.On("IsAdmin", context.Background(), "u1").Return(true, nil)

	final, err := guard.Resolve(context.Background(), nav.AdminPath)
	require.NoError(t, err)
	require.Equal(t, nav.AdminPath, final)
}

func TestGuard_AdminLookupErrorFailsClosed(t *testing.T) {
	guard, admins := newGuard(t, &auth.User{ID: "u1"}, nil)
	admins.On("IsAdmin", context.Background(), "u1").Return(false, errors.New("query timeout"))

	final, err := guard.Resolve(context.Background(), nav.AdminPath)
	require.NoError(t, err)
	require.Equal(t, nav.DashboardPath, final)
}

func TestGuard_IdentityRefreshErrorFailsToLogin(t *testing.T) {
	guard, _ := newGuard(t, nil, errors.New("session backend down"))

	final, err := guard.Resolve(context.Background(), nav.DashboardPath)
	require.NoError(t, err)
	require.Equal(t, nav.LoginPath, final)
}

func TestGuard_RootRedirectEvaluatesTarget(t *testing.T) {
	// Anonymous: / -> /dashboard -> /login.
	guard, _ := newGuard(t, nil, nil)
	final, err := guard.Resolve(context.Background(), nav.RootPath)
	require.NoError(t, err)
	require.Equal(t, nav.LoginPath, final)

	// Authenticated: / -> /dashboard.
	guard, _ = newGuard(t, &auth.User{ID: "u1"}, nil)
	final, err = guard.Resolve(context.Background(), nav.RootPath)
	require.NoError(t, err)
	require.Equal(t, nav.DashboardPath, final)
}

func TestGuard_AdminFactNotCachedAcrossNavigations(t *testing.T) {
	guard, admins := newGuard(t, &auth.User{ID: "u1"}, nil)
	admins.On("IsAdmin", context.Background(), "u1").Return(true, nil).Once()
	admins.On("IsAdmin", context.Background(), "u1").Return(false, nil).Once()

	final, err := guard.Resolve(context.Background(), nav.AdminPath)
	require.NoError(t, err)
	require.Equal(t, nav.AdminPath, final)

	// Role revoked between navigations: the next resolution re-queries.
	final, err = guard.Resolve(context.Background(), nav.AdminPath)
	require.NoError(t, err)
	require.Equal(t, nav.DashboardPath, final)
	admins.AssertNumberOfCalls(t, "IsAdmin", 2)
}

func TestGuard_UnknownRoute(t *testing.T) {
	guard, _ := newGuard(t, nil, nil)

	_, err := guard.Resolve(context.Background(), "/nowhere")
	require.ErrorIs(t, err, nav.ErrUnknownRoute)
}
