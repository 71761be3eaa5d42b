package models

import "errors"

// ErrorKind is the stable machine-readable code carried by every error
// body the API produces.
type ErrorKind string

const (
	// ErrCredentials means DB credentials are missing or could not be
	// decrypted. Fatal, 500.
	ErrCredentials ErrorKind = "credentials_error"
	// ErrConnect means the backing store is unreachable. Fatal, 500.
	ErrConnect ErrorKind = "connect_error"
	// ErrMissingProcedure means the expected stored procedure does not
	// exist in the database: a schema/deployment mismatch, kept distinct
	// from generic query failures so operators can spot it quickly.
	ErrMissingProcedure ErrorKind = "missing_procedure"
	// ErrQuery is a generic database failure. Fatal, 500.
	ErrQuery ErrorKind = "query_error"
	// ErrValidation is bad client input. Recoverable, 400.
	ErrValidation ErrorKind = "validation_error"
	// ErrNotFound means the requested record does not exist. 404.
	ErrNotFound ErrorKind = "not_found"
	// ErrExec means a write appeared to succeed at the SQL layer but the
	// stored procedure's business-rule output flag denied it. Fatal, 500,
	// worth alerting on.
	ErrExec ErrorKind = "exec_error"
	// ErrForbidden means the nonce or capability gate rejected the
	// caller before handler logic ran. 403.
	ErrForbidden ErrorKind = "forbidden"
)

// Validation reasons reported inside a validation_error.
const (
	ReasonInvalidDate   = "invalid_date"
	ReasonRequiredField = "required_field"
	ReasonBadID         = "bad_id"
)

// Error is the typed failure every layer below the API returns. Kind
// drives the HTTP status; Reason and Field carry validation detail.
type Error struct {
	Kind    ErrorKind `json:"code"`
	Reason  string    `json:"reason,omitempty"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewError builds a typed error with no validation detail.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ValidationError builds a 400-class error for a specific field/reason.
func ValidationError(reason, field, message string) *Error {
	return &Error{Kind: ErrValidation, Reason: reason, Field: field, Message: message}
}

// KindOf extracts the ErrorKind from err, unwrapping as needed. Errors
// that are not typed degrade to query_error so the API never leaks an
// unclassified failure.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrQuery
}
