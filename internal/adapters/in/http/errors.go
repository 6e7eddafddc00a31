package http

import (
	"errors"
	"net/http"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
)

// statusFromError maps the application error taxonomy onto HTTP status codes.
// Unknown errors fall through to 500 without leaking their text.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, order.ErrUnknownAction):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrCapacityExceeded):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, commands.ErrEditingDisabled),
		errors.Is(err, commands.ErrCancellationDisabled),
		errors.Is(err, commands.ErrEventTrackingDisabled):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
