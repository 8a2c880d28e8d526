package common

import "errors"

// Canonical error codes surfaced across the gateway API.
const (
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeEncodingError        = "ENCODING_ERROR"
	CodeMissingCredentials   = "MISSING_CREDENTIALS"
	CodeMalformedProof       = "MALFORMED_PROOF"
	CodeSignatureMismatch    = "SIGNATURE_MISMATCH"
	CodeProviderNotSupported = "PROVIDER_NOT_SUPPORTED"
	CodeBadRequest           = "BAD_REQUEST"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}
