package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

// registerDevice upserts the installation named in the path. The body may
// carry label, platform and user agent; everything else is ignored.
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var device models.Device
	if err := utils.DecodeJSON(w, r, &device); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.registerDevice").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	device.DeviceID = chi.URLParam(r, "id")
	device.UserID = userID
	device.Revoked = false
	device.RevokedAt = nil
	if device.UserAgent == "" {
		device.UserAgent = r.UserAgent()
	}

	stored, err := h.services.DeviceService.RegisterDevice(r.Context(), device)
	if err != nil {
		writeError(w, r, err, "*Handler.registerDevice")
		return
	}

	utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.DeviceService.Heartbeat(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "*Handler.heartbeat")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	devices, err := h.services.DeviceService.ListDevices(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "*Handler.listDevices")
		return
	}

	utils.WriteJSON(w, devices, http.StatusOK)
}

func (h *Handler) getDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	device, err := h.services.DeviceService.GetDevice(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "*Handler.getDevice")
		return
	}

	utils.WriteJSON(w, device, http.StatusOK)
}

func (h *Handler) revokeDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.DeviceService.RevokeDevice(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "*Handler.revokeDevice")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.DeviceService.DeleteDevice(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "*Handler.deleteDevice")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
