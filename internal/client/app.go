package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/tui"
	"github.com/MKhiriev/go-trip-keeper/internal/workers"
)

type App struct {
	services *service.ClientServices
	ui       UI
	workers  workers.Worker
	logger   *logger.Logger
}

// NewApp wires the client together. bg runs for the whole life of the app,
// across sign-outs.
func NewApp(services *service.ClientServices, ui UI, bg workers.Worker, logger *logger.Logger) *App {
	return &App{
		services: services,
		ui:       ui,
		workers:  bg,
		logger:   logger,
	}
}

func (a *App) Run() error {
	ctx := context.Background()

	a.workers.Run()
	defer a.workers.Stop()

	for {
		if err := a.signIn(ctx); err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}

		logout, err := a.ui.MainLoop(ctx)
		if err != nil {
			return err
		}
		// queued writes get one last chance before exit; after a sign-out
		// the cycle must settle before another user can claim the queue
		a.services.SyncService.Wait()
		if !logout {
			return nil
		}
		a.logger.Info().Msg("signed out")
	}
}

// signIn restores the stored session or runs the login flow.
func (a *App) signIn(ctx context.Context) error {
	session, err := a.services.AuthService.RestoreSession(ctx)
	if err == nil {
		a.logger.Info().Int64("user_id", session.User.UserID).Msg("session restored")
		return nil
	}
	if !errors.Is(err, service.ErrNoSession) && !errors.Is(err, service.ErrSessionExpired) {
		a.logger.Warn().Err(err).Msg("stored session unreadable")
	}

	session, err = a.ui.LoginFlow(ctx)
	if err != nil {
		return err
	}
	a.logger.Info().Int64("user_id", session.User.UserID).Msg("signed in")
	return nil
}
