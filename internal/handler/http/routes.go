package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/params", h.params)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	// vault and history: token, known non-revoked device, per-account limit
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.deviceGuard, h.rateLimit)

		r.Get("/api/vault", h.getVault)
		r.With(h.checkBodyHash("record")).Put("/api/vault", h.putVault)
		r.Delete("/api/vault", h.deleteVault)

		r.With(h.checkBodyHash("version")).Post("/api/vault/versions", h.insertVersion)
		r.Get("/api/vault/versions", h.listVersions)
		r.Delete("/api/vault/versions", h.pruneVersions)
		r.Get("/api/vault/versions/{createdAt}", h.getVersion)
	})

	// devices: a revoked device can still list devices and see that it is revoked
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.rateLimit)

		r.Get("/api/devices", h.listDevices)
		r.Put("/api/devices/{id}", h.registerDevice)
		r.Get("/api/devices/{id}", h.getDevice)
		r.Delete("/api/devices/{id}", h.deleteDevice)
		r.Post("/api/devices/{id}/heartbeat", h.heartbeat)
		r.Post("/api/devices/{id}/revoke", h.revokeDevice)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
