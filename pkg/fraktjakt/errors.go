package fraktjakt

import (
	"fmt"
	"strings"
)

// Error codes carried by FraktjaktError.
const (
	CodeConnectivity      = "CONNECTIVITY"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeMissingField      = "MISSING_FIELD"
	CodeServerError       = "SERVER_ERROR"
	CodeNoProducts        = "NO_PRODUCTS"
	CodeNoShippingStates  = "NO_SHIPPING_STATES"
	CodeUnexpectedStatus  = "UNEXPECTED_STATUS"
)

// MissingInformationError reports caller input that is structurally
// invalid or incomplete. It is always raised before any network call and
// names every offending field, not just the first.
type MissingInformationError struct {
	Operation string
	Fields    []string
}

// Error implements the error interface.
func (e *MissingInformationError) Error() string {
	return fmt.Sprintf("missing information for %s: %s", e.Operation, strings.Join(e.Fields, ", "))
}

// Is matches any other MissingInformationError for the same operation.
func (e *MissingInformationError) Is(target error) bool {
	t, ok := target.(*MissingInformationError)
	if !ok {
		return false
	}
	return t.Operation == "" || t.Operation == e.Operation
}

// FraktjaktError represents a failure reported by the Fraktjakt service
// or its transport: a malformed reply, a mandatory reply field that is
// absent, an explicit code-2 business error, or a connection failure.
// The message is either the service's own localized error text or a
// fixed connectivity message.
type FraktjaktError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FraktjaktError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fraktjakt error (%s): %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("fraktjakt error (%s): %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *FraktjaktError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is by comparing error codes.
func (e *FraktjaktError) Is(target error) bool {
	t, ok := target.(*FraktjaktError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewFraktjaktError creates a new FraktjaktError.
func NewFraktjaktError(code, message string) *FraktjaktError {
	return &FraktjaktError{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *FraktjaktError) WithCause(err error) *FraktjaktError {
	e.Cause = err
	return e
}

// Sentinels for errors.Is matching by code.
var (
	// ErrConnectivity indicates the service could not be reached or
	// answered with a non-success transport status.
	ErrConnectivity = &FraktjaktError{Code: CodeConnectivity}

	// ErrMalformedResponse indicates the reply body could not be parsed.
	ErrMalformedResponse = &FraktjaktError{Code: CodeMalformedResponse}

	// ErrMissingField indicates a mandatory reply field was absent.
	ErrMissingField = &FraktjaktError{Code: CodeMissingField}

	// ErrServerError indicates the service answered with code 2.
	ErrServerError = &FraktjaktError{Code: CodeServerError}

	// ErrNoProducts indicates a quote reply offered no shipping products.
	ErrNoProducts = &FraktjaktError{Code: CodeNoProducts}

	// ErrNoShippingStates indicates a trace reply carried no states.
	ErrNoShippingStates = &FraktjaktError{Code: CodeNoShippingStates}
)

const connectivityMessage = "could not reach the Fraktjakt service, check connectivity and try again"
