package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/nearmate-api/internal/app"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/internal/utils"
)

// errorStatusMap is consulted top to bottom; specific errors precede the
// parents they wrap.
var errorStatusMap = []struct {
	target  error
	status  int
	message string
}{
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrInvalidOrExpiredOTP, http.StatusUnauthorized, app.MsgInvalidOrExpiredOTP},
	{service.ErrAccountNotFound, http.StatusUnauthorized, app.MsgAccountNotFound},
	{service.ErrRegistrationDataRequired, http.StatusUnauthorized, app.MsgRegistrationDataRequired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
	{service.ErrUnauthorized, http.StatusUnauthorized, app.MsgUnauthorized},

	{ErrForbidden, http.StatusForbidden, app.MsgForbidden},

	{service.ErrLoginIDAllocationFailed, http.StatusConflict, app.MsgLoginIDAllocationFailed},
	{store.ErrPhoneAlreadyExists, http.StatusConflict, app.MsgConflict},
	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgConflict},
	{store.ErrLoginIDTaken, http.StatusConflict, app.MsgConflict},

	{service.ErrOTPDeliveryFailed, http.StatusBadGateway, app.MsgOTPDeliveryFailed},
	{store.ErrTransientFailure, http.StatusServiceUnavailable, app.MsgServiceUnavailable},

	{service.ErrConfiguration, http.StatusInternalServerError, app.MsgInternalServerError},
}

func statusFromError(err error) (int, string) {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.target) {
			return entry.status, entry.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err with the request-scoped logger and answers with the
// mapped {statusCode, message} body. Internal details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}
