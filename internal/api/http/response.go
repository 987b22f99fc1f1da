package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/metrics"
)

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

// statusOf maps a failure code to an HTTP status.
func statusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeNeedSignIn, apperr.CodeInvalidSignIn:
		return http.StatusUnauthorized
	case apperr.CodeBlockedUser, apperr.CodeInactiveUser, apperr.CodeAwaitingUser,
		apperr.CodeRejectedUser, apperr.CodeNotMember, apperr.CodeNotAllowed:
		return http.StatusForbidden
	case apperr.CodeTargetDeleted, apperr.CodeRowDoesNotExist:
		return http.StatusNotFound
	case apperr.CodeRowAlreadyExists:
		return http.StatusConflict
	case apperr.CodeInvalidParameter, apperr.CodeInvalidExpireDate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("response encoding failed", "error", err)
		}
	}
}

// writeError translates a service failure into an HTTP response. Internal
// failures are logged with their cause but leave the body generic.
func writeError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	metrics.ValidationFailures.WithLabelValues(string(code)).Inc()

	if apperr.IsInternal(err) {
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Code:    apperr.CodeInternalServer,
			Message: "internal server error",
		})
		return
	}

	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeJSON(w, statusOf(code), errorBody{Code: code, Message: message})
}
