package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error by how it surfaces to callers.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindDuplicate
	KindUnknownReference
	KindAuthentication
	KindAuthorization
	KindNotFound
)

// Error is a caller-safe domain failure. Two Errors match under errors.Is
// when their codes are equal, so constructors with dynamic messages still
// match the package sentinels.
type Error struct {
	kind Kind
	code string
	msg  string
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Code returns the stable machine-readable code.
func (e *Error) Code() string { return e.code }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

var (
	ErrValidation         = newError(KindValidation, "ValidationError", "Invalid request.")
	ErrMissingCredentials = newError(KindValidation, "MissingCredentials", "Email and password are required.")
	ErrWeakPassword       = newError(KindValidation, "WeakPassword", fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength))
	ErrInvalidPagination  = newError(KindValidation, "InvalidPagination", "Page and limit must be positive numbers.")
	ErrAlreadyInactive    = newError(KindValidation, "AlreadyInactive", "User is already inactive.")

	ErrDuplicateEmail = newError(KindDuplicate, "DuplicateEmail", "The email address is already registered.")
	ErrUnknownRole    = newError(KindUnknownReference, "UnknownRole", "Role not found.")

	ErrInvalidCredentials = newError(KindAuthentication, "InvalidCredentials", "Invalid credentials.")
	ErrUnauthenticated    = newError(KindAuthentication, "Unauthenticated", "Access denied. No token provided.")
	ErrTokenExpired       = newError(KindAuthentication, "TokenExpired", "Token has expired.")
	ErrInvalidToken       = newError(KindAuthentication, "InvalidToken", "Invalid token.")

	ErrAccountInactive = newError(KindAuthorization, "AccountInactive", "User account is inactive.")
	ErrForbidden       = newError(KindAuthorization, "Forbidden", "Access denied.")

	ErrUserNotFound = newError(KindNotFound, "UserNotFound", "User not found.")
)

const (
	// MinPasswordLength is the shortest password accepted on create or change.
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit, in bytes.
	MaxPasswordLength = 72
)

// ErrPasswordTooLong shares the WeakPassword code.
var ErrPasswordTooLong = newError(KindValidation, ErrWeakPassword.code,
	fmt.Sprintf("Password must be at most %d bytes long.", MaxPasswordLength))

// CheckPassword enforces the accepted password length range.
func CheckPassword(plain string) error {
	switch {
	case len(plain) < MinPasswordLength:
		return ErrWeakPassword
	case len(plain) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// Invalid returns a ValidationError carrying msg.
func Invalid(msg string) error {
	return newError(KindValidation, ErrValidation.code, msg)
}

// UnknownRole returns an UnknownRole error naming the requested role.
func UnknownRole(name string) error {
	return newError(KindUnknownReference, ErrUnknownRole.code, fmt.Sprintf("Role %q not found.", name))
}

// UserNotFoundAuth is the Auth Guard's rejection when the token subject no
// longer exists.
func UserNotFoundAuth() error {
	return newError(KindAuthentication, ErrUnauthenticated.code, "User not found.")
}

// AuthenticationRequired is returned by role checks that run without an
// authenticated user in context.
func AuthenticationRequired() error {
	return newError(KindAuthentication, ErrUnauthenticated.code, "Authentication required.")
}

// ForbiddenRoles returns a Forbidden error listing the roles that would pass.
func ForbiddenRoles(allowed []RoleName) error {
	msg := "Access denied. Required roles:"
	for i, r := range allowed {
		if i > 0 {
			msg += ","
		}
		msg += " " + string(r)
	}
	return newError(KindAuthorization, ErrForbidden.code, msg)
}

// AsError unwraps err to a *Error if one is in its chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
