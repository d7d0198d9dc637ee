// Package app assembles gateways, state stores and the route guard
// into one explicitly-owned object graph. Nothing here is a package
// level singleton; consumers hold the App and inject it where needed.
package app

import (
	"fmt"
	"log/slog"

	"github.com/dvail/trackline/internal/config"
	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/dvail/trackline/internal/domain/project"
	"github.com/dvail/trackline/internal/gateway"
	"github.com/dvail/trackline/internal/gateway/rest"
	"github.com/dvail/trackline/internal/gateway/sqlite"
	"github.com/dvail/trackline/internal/nav"
)

// Gateways is the set of remote-service interfaces the stores and the
// guard consume.
type Gateways struct {
	Auth       gateway.AuthGateway
	Projects   gateway.ProjectGateway
	Activities gateway.ActivityGateway
	Admins     gateway.AdminGateway
}

// App owns the three state stores and the route guard.
type App struct {
	Auth       *auth.Store
	Projects   *project.Store
	Activities *activity.Store
	Guard      *nav.Guard

	// Local is set in sqlite mode for account management helpers.
	Local *sqlite.Gateway

	closer func() error
}

// New wires stores and guard over the given gateways.
func New(gws Gateways, logger *slog.Logger) *App {
	authStore := auth.NewStore(gws.Auth, logger)
	return &App{
		Auth:       authStore,
		Projects:   project.NewStore(gws.Projects, logger),
		Activities: activity.NewStore(gws.Activities, logger),
		Guard:      nav.NewGuard(authStore, gws.Admins, logger),
	}
}

// Open builds the gateway set for the configured mode and assembles the
// app around it. Close releases whatever the mode opened.
func Open(cfg config.Config, logger *slog.Logger) (*App, error) {
	switch cfg.Gateway.Mode {
	case config.ModeREST:
		client := rest.New(cfg.Gateway.URL, cfg.Gateway.APIKey, logger)
		return New(Gateways{
			Auth:       client,
			Projects:   client,
			Activities: client,
			Admins:     client,
		}, logger), nil

	case config.ModeSQLite:
		gw, err := sqlite.Open(cfg.Gateway.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening local gateway: %w", err)
		}
		app := New(Gateways{
			Auth:       gw,
			Projects:   gw,
			Activities: gw,
			Admins:     gw,
		}, logger)
		app.Local = gw
		app.closer = gw.Close
		return app, nil

	default:
		return nil, fmt.Errorf("unknown gateway mode %q", cfg.Gateway.Mode)
	}
}

// Close releases resources held by the gateway layer.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
