package http

import (
	"errors"
	"net/http"

	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/pkg/errs"
)

// statusFor maps domain and application errors to HTTP status codes.
// Transition errors surface as conflicts, authorization failures as
// forbidden, geofence rejections as unprocessable, and anything unmapped is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, job.ErrWrongState),
		errors.Is(err, job.ErrExtraTimeAlreadyPending),
		errors.Is(err, job.ErrNoExtraTimePending),
		errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, job.ErrActorNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, job.ErrOutsideGeofence):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, job.ErrMissingTimestamp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
