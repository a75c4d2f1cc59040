package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for routing and support diagnosis.
type Kind string

const (
	KindGateway         Kind = "gateway_error"
	KindStorage         Kind = "storage_error"
	KindAuthorization   Kind = "authorization_error"
	KindMalformedRecord Kind = "malformed_record"
	KindValidation      Kind = "validation_error"
	KindInternal        Kind = "internal_error"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`

	// Processor diagnostics, retained for support when the gateway declines.
	ProcessorResponseCode string `json:"processor_response_code,omitempty"`
	ProcessorResponseText string `json:"processor_response_text,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Gateway reports a processor rejection. The buyer sees the message; the
// processor response code/text ride along for support diagnosis.
func Gateway(message string, err error) *Error {
	return &Error{Kind: KindGateway, Code: http.StatusPaymentRequired, Message: message, Err: err}
}

// Storage reports a failed document write or read.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Code: http.StatusInternalServerError, Message: message, Err: err}
}

// Authorization reports a missing or insufficient admin role.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Code: http.StatusForbidden, Message: message}
}

// MalformedRecord reports a log entry missing expected fields. Read paths
// skip these rather than failing the whole listing.
func MalformedRecord(message string) *Error {
	return &Error{Kind: KindMalformedRecord, Code: http.StatusUnprocessableEntity, Message: message}
}

// Validation reports bad request input.
func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusBadRequest, Message: message, Err: err}
}

// Internal wraps anything unexpected behind a generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Respond writes an error as a JSON response. Unknown error types are
// masked as internal errors; the detailed message is only exposed outside
// production.
func Respond(c *gin.Context, err error, env string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	body := gin.H{"success": false, "error": appErr.Message}
	if env != "production" && appErr.Err != nil {
		body["detail"] = appErr.Err.Error()
	}
	c.JSON(appErr.Code, body)
}
