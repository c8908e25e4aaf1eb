package apierrors

import (
	"errors"
	"net/http"
)

type Reason string

const (
	ReasonBadRequest     Reason = "BadRequest"
	ReasonUnauthorized   Reason = "Unauthorized"
	ReasonForbidden      Reason = "Forbidden"
	ReasonNotFound       Reason = "NotFound"
	ReasonConflict       Reason = "Conflict"
	ReasonInternalServer Reason = "InternalServerError"
)

type Status struct {
	// Code is the http status code sent to the caller
	Code    int
	Reason  Reason
	Message string
	Details string
}

// APIStatus is implemented by all errors that carry a response status.
type APIStatus interface {
	Status() Status
}

type StatusError struct {
	ErrStatus Status
}

var _ error = (*StatusError)(nil)
var _ APIStatus = (*StatusError)(nil)

func (e *StatusError) Error() string {
	if e.ErrStatus.Details != "" {
		return e.ErrStatus.Message + ": " + e.ErrStatus.Details
	}
	return e.ErrStatus.Message
}

func (e *StatusError) Status() Status {
	return e.ErrStatus
}

func newStatusError(code int, reason Reason, message, details string) error {
	return &StatusError{
		ErrStatus: Status{
			Code:    code,
			Reason:  reason,
			Message: message,
			Details: details,
		},
	}
}

func NewBadRequest(details string) error {
	return newStatusError(http.StatusBadRequest, ReasonBadRequest, "request validation failed", details)
}

func NewUnauthorized(details string) error {
	return newStatusError(http.StatusUnauthorized, ReasonUnauthorized, "authorization required", details)
}

func NewForbidden(details string) error {
	return newStatusError(http.StatusForbidden, ReasonForbidden, "you are not allowed to perform this operation", details)
}

func NewNotFound(details string) error {
	return newStatusError(http.StatusNotFound, ReasonNotFound, "not found", details)
}

// NewConflict is used when the target of a write is already taken.
//
// Conflicts are answered with 400, the web frontend treats them like any other rejected input.
func NewConflict(details string) error {
	return newStatusError(http.StatusBadRequest, ReasonConflict, "conflict", details)
}

func NewInternalServerError(details string) error {
	return newStatusError(http.StatusInternalServerError, ReasonInternalServer, "internal server error", details)
}

// AsAPIStatus returns the status carrying error anywhere in the chain of err, or nil.
func AsAPIStatus(err error) APIStatus {
	var status APIStatus
	if errors.As(err, &status) {
		return status
	}
	return nil
}

func reasonOf(err error) Reason {
	if status := AsAPIStatus(err); status != nil {
		return status.Status().Reason
	}
	return ""
}

func IsBadRequestError(err error) bool {
	return reasonOf(err) == ReasonBadRequest
}

func IsUnauthorizedError(err error) bool {
	return reasonOf(err) == ReasonUnauthorized
}

func IsForbiddenError(err error) bool {
	return reasonOf(err) == ReasonForbidden
}

func IsNotFoundError(err error) bool {
	return reasonOf(err) == ReasonNotFound
}

func IsConflictError(err error) bool {
	return reasonOf(err) == ReasonConflict
}

func IsInternalServerError(err error) bool {
	return reasonOf(err) == ReasonInternalServer
}
