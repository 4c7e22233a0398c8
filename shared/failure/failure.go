package failure

import (
	"errors"
	"net/http"
)

// Stable kind tags for the booking error taxonomy. Presentation layers key
// off these instead of parsing messages.
const (
	KindMalformedInterval    = "malformed_interval"
	KindOutOfHorizon         = "out_of_horizon"
	KindResourceKindMismatch = "resource_kind_mismatch"
	KindSlotNotPublished     = "slot_not_published"
	KindConflict             = "conflict"
	KindForbidden            = "forbidden"
	KindInvalidState         = "invalid_state"
	KindResourceNotFound     = "resource_not_found"
	KindBusy                 = "busy"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Kind is an optional stable tag; Details carries structured payload such as
// conflicting booking ids.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// ResourceNotFound marks a missing bookable resource, distinct from other
// not-found outcomes so callers can map it precisely.
func ResourceNotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindResourceNotFound,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// ConflictWithBookings returns a Conflict failure carrying the ids of the
// already-confirmed bookings that overlap the requested interval.
func ConflictWithBookings(message string, bookingIDs []string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
		Details: map[string]any{"conflicting_booking_ids": bookingIDs},
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: msg,
	}
}

// InvalidState rejects an operation that does not apply to the entity's
// current lifecycle state, e.g. cancelling a booking that is not Confirmed.
func InvalidState(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidState,
		Message: msg,
	}
}

// Unprocessable returns a semantic-validation failure tagged with the given kind.
func Unprocessable(kind, msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    kind,
		Message: msg,
	}
}

// Busy signals a per-resource admission-lock timeout. Retryable by the caller.
func Busy(msg string) error {
	return &Failure{
		Code:    http.StatusTooManyRequests,
		Kind:    KindBusy,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the stable kind tag of an error, or empty when untagged.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether the error carries the given kind tag.
func IsKind(err error, kind string) bool {
	return GetKind(err) == kind
}
