package service

import "errors"

// ErrorKind classifies every failure the gate and the workflows can return.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindUnauthenticated
	KindUnauthorized // caller's role could not be determined
	KindForbidden
	KindInvalidRequest
	KindRoleResolution
	KindIdentityCreation
	KindIdentityDeletion
	KindIdentityUpdate
	KindProfileInsert
	KindProfileUpdate
	KindRoleAssignment
	KindRoleProfile
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindRoleResolution:
		return "RoleResolutionError"
	case KindIdentityCreation:
		return "IdentityCreationError"
	case KindIdentityDeletion:
		return "IdentityDeletionError"
	case KindIdentityUpdate:
		return "IdentityUpdateError"
	case KindProfileInsert:
		return "ProfileInsertError"
	case KindProfileUpdate:
		return "ProfileUpdateError"
	case KindRoleAssignment:
		return "RoleAssignmentError"
	case KindRoleProfile:
		return "RoleProfileError"
	default:
		return "InternalError"
	}
}

// AdminError is the error type returned by the gate and the workflows. Msg is
// safe to show to clients; Err keeps the underlying cause for logs.
type AdminError struct {
	Kind   ErrorKind
	Msg    string
	Err    error
	Fields map[string]string
}

func (e *AdminError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *AdminError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, msg string, err error) *AdminError {
	return &AdminError{Kind: kind, Msg: msg, Err: err}
}

func invalido(msg string) *AdminError {
	return &AdminError{Kind: KindInvalidRequest, Msg: msg}
}

// KindOf returns the kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var ae *AdminError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var ae *AdminError
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	return "Error interno del servidor"
}
