package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Lifecycle error taxonomy. Services wrap these sentinels with
// fmt.Errorf("%w: ...") so callers can distinguish a policy violation or a
// lost race from a transient store failure and retry (or not) accordingly.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")
)

// errorCode maps a taxonomy error onto the wire-level error code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized, "NOT_AUTHENTICATED"
	case errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound, "PROFILE_NOT_FOUND"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"
	}
	return http.StatusInternalServerError, "SERVER_ERROR"
}

// RespondError writes the standardized error envelope for a taxonomy error.
func RespondError(c echo.Context, err error) error {
	status, code := errorCode(err)
	return c.JSON(status, CreateErrorResponse(code, err.Error(), nil))
}

// HTTPStatus exposes the status mapping for tests and middleware.
func HTTPStatus(err error) int {
	status, _ := errorCode(err)
	return status
}
