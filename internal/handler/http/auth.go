package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/app"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tokens, err := h.services.TokenService.IssueTokens(ctx, user.UserID, user.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", user.UserID).Str("role", user.Role).Msg("user logged in")
	utils.WriteJSON(w, models.LoginResponse{User: user.Identity(), TokenPair: tokens}, http.StatusOK)
}

func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.RequestOTPRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	// both values were checked by the validator
	actor, _ := models.ParseActorKind(req.UserType)
	purpose, _ := models.ParseOTPPurpose(req.Purpose)

	result, err := h.services.OTPService.RequestOTP(r.Context(), req.Mobile, actor, purpose)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OTPRequestResponse{
		Message:   app.MsgOTPSent,
		Mobile:    result.Phone,
		UserType:  actor.String(),
		ExpiresIn: int64(result.ExpiresIn / time.Second),
		OTPID:     result.OTPID,
		OTP:       result.Code,
	}, http.StatusOK)
}

// verifyOTPRegister consumes a register-scoped code and signs the caller in,
// creating the account from userData when the phone is not yet known.
func (h *Handler) verifyOTPRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, actor, ok := h.decodeVerifyRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.services.OTPService.VerifyOTP(ctx, req.Mobile, req.OTP, actor, models.PurposeRegister); err != nil {
		writeError(w, r, err)
		return
	}

	account, created, err := h.services.AccountService.FindOrCreate(ctx, req.Mobile, actor, req.UserData)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status, message := http.StatusOK, app.MsgLoginSuccess
	if created {
		status, message = http.StatusCreated, app.MsgRegistrationSuccess
	}
	h.writeAccountTokens(w, r, account, message, status)
}

// verifyOTPLogin consumes a login-scoped code for an existing account.
func (h *Handler) verifyOTPLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, actor, ok := h.decodeVerifyRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.services.OTPService.VerifyOTP(ctx, req.Mobile, req.OTP, actor, models.PurposeLogin); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.AccountService.FindExisting(ctx, req.Mobile, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeAccountTokens(w, r, account, app.MsgLoginSuccess, http.StatusOK)
}

func (h *Handler) checkPhone(w http.ResponseWriter, r *http.Request) {
	var req models.CheckPhoneRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	actor, _ := models.ParseActorKind(req.UserType)

	result, err := h.services.AccountService.CheckPhoneRegistration(r.Context(), req.Mobile, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) decodeVerifyRequest(w http.ResponseWriter, r *http.Request) (models.VerifyOTPRequest, models.ActorKind, bool) {
	var req models.VerifyOTPRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return req, "", false
	}

	actor, _ := models.ParseActorKind(req.UserType)
	return req, actor, true
}

func (h *Handler) writeAccountTokens(w http.ResponseWriter, r *http.Request, account models.Account, message string, status int) {
	tokens, err := h.services.TokenService.IssueTokens(r.Context(), account.ID, account.Role())
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Str("id", account.ID).
		Str("actor", account.Type.String()).
		Msg(message)

	utils.WriteJSON(w, models.AccountAuthResponse{User: account, TokenPair: tokens, Message: message}, status)
}
