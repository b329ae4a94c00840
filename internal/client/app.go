package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/tui"
)

type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app: services and ui are required")
	}
	return &App{services: services, tui: ui, logger: logger}, nil
}

// Run signs in, opens the vault screens and repeats after every logout.
// Leaving the program is not an error.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		logout, err := a.runSession(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
		if err = a.logout(ctx); err != nil {
			return err
		}
	}
}

func (a *App) runSession(ctx context.Context) (logout bool, err error) {
	svc := a.services

	session, ok := svc.AuthService.RestoreSession(ctx)
	if !ok {
		if session, err = a.tui.AuthFlow(ctx); err != nil {
			return false, err
		}
	}
	a.logger.Info().Int64("user_id", session.UserID).Str("login", session.Login).Msg("signed in")

	deviceID, err := svc.DeviceService.DeviceID(ctx)
	if err != nil {
		return false, fmt.Errorf("device id: %w", err)
	}
	svc.Session.SetDeviceID(deviceID)

	if err = svc.SyncService.RestoreMarker(ctx, svc.Session); err != nil {
		a.logger.Warn().Err(err).Msg("sync marker was not restored, next sync compares from scratch")
	}
	if _, err = svc.StateService.Load(ctx); err != nil {
		return false, fmt.Errorf("load local state: %w", err)
	}

	// registers the device on first sign-in; offline is fine here
	if err = svc.DeviceService.EnsureActive(ctx); err != nil {
		a.logger.Warn().Err(err).Str("device_id", deviceID).Msg("device check failed")
	}

	svc.SyncScheduler.Start(ctx)
	defer svc.SyncScheduler.Stop()

	return a.tui.MainLoop(ctx)
}

// logout pushes what is still unsynced, then forgets the token, the
// passphrase, the local mirror and the marker so another account can sign
// in on this device.
func (a *App) logout(ctx context.Context) error {
	svc := a.services

	if !svc.Session.Locked() {
		if err := svc.SyncCoordinator.AutoPush(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("last push before logout failed")
		}
	}

	if err := svc.AuthService.Logout(ctx); err != nil {
		return err
	}
	svc.Session.Lock()

	if err := svc.StateService.Clear(ctx); err != nil {
		return err
	}
	if err := svc.SyncService.ForgetMarker(ctx, svc.Session); err != nil {
		return err
	}

	a.logger.Info().Msg("signed out")
	return nil
}
