package handler

import (
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/handler/grpc"
	"github.com/pentagon14032008-ux/Life-OS/internal/handler/http"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
)

// Handlers holds one handler per configured transport; a nil field means
// the transport is off.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a handler for every transport that has an address.
// pinger backs the gRPC health status and may be nil.
func NewHandlers(services *service.Services, pinger grpc.Pinger, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	var h Handlers
	if cfg.HTTPAddress != "" {
		h.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		h.GRPC = grpc.NewHandler(pinger, logger)
	}

	logger.Info().
		Bool("http", h.HTTP != nil).
		Bool("grpc", h.GRPC != nil).
		Msg("handlers created")

	if h.HTTP == nil && h.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}
	return &h, nil
}
