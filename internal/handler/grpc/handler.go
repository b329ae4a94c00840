package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

// VaultServiceName is the health service name reported next to the
// overall ("") status.
const VaultServiceName = "lifeos.vault"

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It serves the standard gRPC health protocol. The status follows database
// reachability: while the vault store answers pings both the overall and the
// vault service are SERVING, otherwise NOT_SERVING.
type Handler struct {
	health *health.Server
	pinger Pinger

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. A nil pinger means the handler always
// reports SERVING.
func NewHandler(pinger Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: health.NewServer(),
		pinger: pinger,
		logger: logger,
	}
}

// Register attaches the handler's services to srv.
func (h *Handler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.health)
}

// WatchStorage probes the store every interval and updates the health
// status until ctx is done.
func (h *Handler) WatchStorage(ctx context.Context, interval time.Duration) {
	h.probe(ctx, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.probe(ctx, interval)
		}
	}
}

func (h *Handler) probe(ctx context.Context, timeout time.Duration) {
	servingStatus := healthpb.HealthCheckResponse_SERVING

	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := h.pinger.Ping(pingCtx); err != nil {
			h.logger.Warn().Err(err).Str("func", "*Handler.probe").Msg("vault store is unreachable")
			servingStatus = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.health.SetServingStatus("", servingStatus)
	h.health.SetServingStatus(VaultServiceName, servingStatus)
}

// Shutdown switches every service to NOT_SERVING so that watchers learn
// about the stop before connections are closed.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogging writes one access line per unary call, the way the HTTP
// layer does for requests.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	event := h.logger.Debug()
	if err != nil {
		event = h.logger.Warn().Err(err)
	}
	event.
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
