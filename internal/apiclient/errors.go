package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindServer       Kind = "server"
	KindHTTP         Kind = "http"
	KindNetwork      Kind = "network"
	KindConstruction Kind = "construction"
)

// User-facing fallback messages.
const (
	MsgGeneric    = "An error occurred"
	MsgNetwork    = "Network error. Please check your connection."
	MsgUnexpected = "An unexpected error occurred"
)

// RequestError is returned by every failed Client call.
type RequestError struct {
	Kind             Kind
	Status           int
	Message          string
	ValidationErrors map[string]string
	Method           string
	Path             string
	Err              error

	// fromServer is set when Message came from the response envelope.
	fromServer bool
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status > 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error { return e.Err }

// ErrorClass tags metrics with the failure kind.
func (e *RequestError) ErrorClass() string { return string(e.Kind) }

// KindOf returns the failure kind of err, or "" if err is not a RequestError.
func KindOf(err error) Kind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsKind reports whether err is a RequestError of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// ServerMessage returns the backend's envelope message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var re *RequestError
	if errors.As(err, &re) && re.fromServer && re.Message != "" {
		return re.Message, true
	}
	return "", false
}

// MessageOr returns the backend's envelope message or fallback.
func MessageOr(err error, fallback string) string {
	if msg, ok := ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// KindForStatus maps an HTTP status to a failure kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= http.StatusInternalServerError:
		return KindServer
	default:
		return KindHTTP
	}
}

// NewHTTPError builds the error for a failed response carrying message in its
// envelope. An empty message falls back to MsgGeneric.
func NewHTTPError(status int, message string) *RequestError {
	e := &RequestError{Kind: KindForStatus(status), Status: status, Message: MsgGeneric}
	if message != "" {
		e.Message = message
		e.fromServer = true
	}
	return e
}
