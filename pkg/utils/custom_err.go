package utils

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of these so HandleServiceError can
// map them to a status code with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUpstreamFailure    = errors.New("upstream service failure")
	ErrDatabaseError      = errors.New("database error")
)

func Validationf(format string, args ...any) error {
	return wrapKind(ErrValidation, format, args...)
}

func PermissionDeniedf(format string, args ...any) error {
	return wrapKind(ErrPermissionDenied, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return wrapKind(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return wrapKind(ErrConflict, format, args...)
}

func PreconditionFailedf(format string, args ...any) error {
	return wrapKind(ErrPreconditionFailed, format, args...)
}

func Upstreamf(format string, args ...any) error {
	return wrapKind(ErrUpstreamFailure, format, args...)
}

func wrapKind(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
