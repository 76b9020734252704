package apperr

import (
	"errors"
	"fmt"
)

// AuthError is a credential or privilege failure. Every AuthError is
// answered with 401 and its Msg.
type AuthError struct {
	Reason string
	Msg    string
}

func (e *AuthError) Error() string { return e.Msg }

var (
	ErrMissingCredential     = &AuthError{Reason: "missing_credential", Msg: "Missing authorization header"}
	ErrMalformedCredential   = &AuthError{Reason: "malformed_credential", Msg: "Bearer token malformed"}
	ErrTokenMalformed        = &AuthError{Reason: "token_malformed", Msg: "Invalid token. Please log in again."}
	ErrInvalidSignature      = &AuthError{Reason: "invalid_signature", Msg: "Invalid token. Please log in again."}
	ErrTokenExpired          = &AuthError{Reason: "token_expired", Msg: "Signature expired. Please log in again."}
	ErrTokenRevoked          = &AuthError{Reason: "token_revoked", Msg: "Token blacklisted. Please log in again."}
	ErrInsufficientPrivilege = &AuthError{Reason: "insufficient_privilege", Msg: "requires admin authorization"}
)

// ErrInvalidLogin is answered with 404 to match the login contract.
var ErrInvalidLogin = errors.New("invalid password and/or username and account")

type NotFoundError struct {
	Resource string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("No %s found with that id", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s already exists", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ValidationError carries field level messages in Fields when they are known.
type ValidationError struct {
	Field  string
	Msg    string
	Fields map[string]string
	Err    error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

// FilterTermMalformedError is a query parameter that names a filterable
// field but whose value is not "<operator>__<literal>", or whose literal
// does not fit the field type.
type FilterTermMalformedError struct {
	Field string
	Value string
	Err   error
}

func (e FilterTermMalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("filter term %s=%q is malformed: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("filter term %s=%q must look like <operator>__<value>", e.Field, e.Value)
}

func (e FilterTermMalformedError) Unwrap() error { return e.Err }

type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("storage: %v", e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// Storage wraps a datastore failure. It returns nil for a nil err.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return StorageError{Op: op, Err: err}
}

func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsFilterTermMalformed(err error) bool {
	var target FilterTermMalformedError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}
