package http

import (
	"fmt"
	"net/http"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
	"github.com/pentagon14032008-ux/Life-OS/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := utils.DecodeJSON(w, r, &user); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	h.writeToken(w, r, registeredUser, app.MsgRegistrationFailed)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := utils.DecodeJSON(w, r, &user); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	h.writeToken(w, r, foundUser, app.MsgLoginFailed)
}

// params hands out the encryption salt for a login. Unknown logins get the
// same answer as a wrong password.
func (h *Handler) params(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := utils.DecodeJSON(w, r, &user); err != nil {
		log.Err(err).Str("func", "*Handler.params").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	found, err := h.services.AuthService.Params(ctx, user)
	if err != nil {
		writeError(w, r, err, "*Handler.params")
		return
	}

	utils.WriteJSON(w, models.User{Login: found.Login, EncryptionSalt: found.EncryptionSalt}, http.StatusOK)
}

// writeToken issues a token for user and puts it into the Authorization
// header. A signing failure is reported as 502 with failMsg so that the
// client can tell which step broke.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User, failMsg string) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "*Handler.writeToken").
			Int64("id", user.UserID).
			Msg("creation of token failed")
		http.Error(w, failMsg, http.StatusBadGateway)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
