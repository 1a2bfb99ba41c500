// Package errs provides standardized error types used across the service.
//
// Each error type follows a consistent pattern: a sentinel error variable
// (e.g. ErrObjectNotFound), a struct carrying the details (ParamName, Cause),
// constructor functions with and without cause, an Error() method for
// formatting, and an Unwrap() method so errors.Is classifies against the
// sentinel. Interpolated values are sanitized so they cannot break log lines.
package errs
