package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

func (h *Handler) getVault(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	record, err := h.services.VaultService.GetVault(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "*Handler.getVault")
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

// putVault replaces the account vault. The body hash was checked by
// checkBodyHash before this point.
func (h *Handler) putVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.VaultUploadRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.putVault").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	record := req.Record
	record.UserID = userID
	if deviceID, found := utils.GetDeviceIDFromContext(ctx); found {
		record.DeviceID = deviceID
	}

	stored, err := h.services.VaultService.PutVault(ctx, record)
	if err != nil {
		writeError(w, r, err, "*Handler.putVault")
		return
	}

	log.Debug().
		Int64("user_id", userID).
		Int64("updated_at", stored.Meta.UpdatedAt).
		Str("device_id", stored.DeviceID).
		Msg("vault stored")

	utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) deleteVault(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.DeleteVault(r.Context(), userID); err != nil {
		writeError(w, r, err, "*Handler.deleteVault")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", userID).Msg("vault and history wiped")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) insertVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.VersionUploadRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.insertVersion").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	version := req.Version
	version.UserID = userID

	stored, err := h.services.VaultService.InsertVersion(ctx, version)
	if err != nil {
		writeError(w, r, err, "*Handler.insertVersion")
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}

// listVersions answers newest first. A missing limit leaves the page size
// to the service.
func (h *Handler) listVersions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	versions, err := h.services.VaultService.ListVersions(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err, "*Handler.listVersions")
		return
	}
	if versions == nil {
		versions = []models.VersionInfo{}
	}

	utils.WriteJSON(w, models.VersionListResponse{Versions: versions, Length: len(versions)}, http.StatusOK)
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	raw, err := url.PathUnescape(chi.URLParam(r, "createdAt"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getVersion").Msg("bad createdAt escape")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	createdAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getVersion").Str("createdAt", raw).Msg("bad createdAt")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	version, err := h.services.VaultService.GetVersion(r.Context(), userID, createdAt)
	if err != nil {
		writeError(w, r, err, "*Handler.getVersion")
		return
	}

	utils.WriteJSON(w, version, http.StatusOK)
}

func (h *Handler) pruneVersions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	keep, ok := queryInt(w, r, "keep")
	if !ok {
		return
	}

	deleted, err := h.services.VaultService.PruneVersions(r.Context(), userID, keep)
	if err != nil {
		writeError(w, r, err, "*Handler.pruneVersions")
		return
	}

	utils.WriteJSON(w, models.PruneResponse{Deleted: deleted}, http.StatusOK)
}

func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Error().Msg("no user ID in context")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// queryInt reads an optional non-negative integer query parameter. An
// absent parameter yields 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.FromRequest(r).Warn().Str("param", name).Str("value", raw).Msg("bad query parameter")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return 0, false
	}
	return n, true
}
