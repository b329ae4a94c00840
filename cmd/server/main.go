package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/handler"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/server"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
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

	log := logger.NewLogger("life-os-server")
	if err := run(buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := config.GetServerConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	log.SetLevel(cfg.App.LogLevel)
	log.Debug().
		Str("http", cfg.Server.HTTPAddress).
		Str("grpc", cfg.Server.GRPCAddress).
		Str("version", buildInfo.BuildVersion()).
		Msg("received configs")

	utils.InitHasherPool(cfg.App.HashKey)

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	services, err := service.NewServices(storages, *cfg, buildInfo, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, storages, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer()
}
