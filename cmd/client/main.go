package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pentagon14032008-ux/Life-OS/internal/adapter"
	"github.com/pentagon14032008-ux/Life-OS/internal/client"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/tui"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	buildInfo.Print(os.Stdout)

	cfg, err := config.GetClientConfig()
	if err != nil {
		// the log file path comes from the config, so there is no logger yet
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("life-os-client", cfg.App.LogPath)
	log.SetLevel(cfg.App.LogLevel)

	if err = run(cfg, buildInfo, log); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, buildInfo, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	localStorage, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer localStorage.Close()

	// the idle lock fires from the scheduler goroutine and needs the ui,
	// which is built after the services
	var ui *tui.TUI
	onLock := func() {
		if ui != nil {
			ui.NotifyLocked()
		}
	}

	services, err := service.NewClientServices(localStorage, serverAdapter, *cfg, buildInfo, onLock, log)
	if err != nil {
		return fmt.Errorf("create client services: %w", err)
	}

	ui = tui.New(services, buildInfo, cfg.Vault.VersionListLimit, log)

	var app client.Client
	if app, err = client.NewApp(services, ui, log); err != nil {
		return fmt.Errorf("init client app: %w", err)
	}
	return app.Run()
}
