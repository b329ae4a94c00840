package http

import (
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
)

// Handler serves the REST API. Route wiring lives in routes.go.
type Handler struct {
	services *service.Services
	// limiter is nil when rate limiting is off
	limiter *userRateLimiter
	logger  *logger.Logger
}

// NewHandler builds the REST handler. A non-positive cfg.RateLimit disables
// the per-account limiter.
func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	return &Handler{
		services: services,
		limiter:  newUserRateLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:   logger.GetChildLogger(),
	}
}
