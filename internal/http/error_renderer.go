package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/copperline/bizportal/internal/errors"
)

// statusForCode maps application error codes onto HTTP status codes.
// Unauthenticated and forbidden stay distinguishable so a client can tell
// "log in" apart from "you may not".
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeConflict, apperrors.ErrCodeAlreadyImported, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeNotConnected:
		// The portal refuses to proxy for a session with no credential.
		return http.StatusPreconditionFailed
	case apperrors.ErrCodeExchangeFailed, apperrors.ErrCodeRefreshFailed,
		apperrors.ErrCodeExternalFetch, apperrors.ErrCodeExternalCreate:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		// Client went away; 499 is conventional even if unregistered.
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders an application error as a JSON response, mapping its
// code to an HTTP status. Internal causes are not leaked: only the AppError's
// own message is serialized.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)

	body := map[string]string{
		"error":   string(code),
		"message": messageOf(err),
	}
	if field := apperrors.GetField(err); field != "" {
		body["field"] = field
	}
	WriteJSON(w, status, body)
}

func messageOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
