// Package apperr defines the typed failure values raised by validation,
// policy, and service code. Every error carries a code the HTTP layer maps to
// a status, plus a human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNeedSignIn        Code = "NEED_SIGN_IN"
	CodeBlockedUser       Code = "BLOCKED_USER"
	CodeInactiveUser      Code = "INACTIVE_USER"
	CodeAwaitingUser      Code = "AWAITING_USER"
	CodeRejectedUser      Code = "REJECTED_USER"
	CodeTargetDeleted     Code = "TARGET_DELETED"
	CodeNotMember         Code = "NOT_MEMBER"
	CodeNotAllowed        Code = "API_NOT_ALLOWED"
	CodeInvalidParameter  Code = "INVALID_PARAMETER"
	CodeInvalidExpireDate Code = "INVALID_EXPIRE_DATE"
	CodeRowAlreadyExists  Code = "ROW_ALREADY_EXISTS"
	CodeRowDoesNotExist   Code = "ROW_DOES_NOT_EXIST"
	CodeInvalidSignIn     Code = "INVALID_SIGN_IN"
	CodeInternalServer    Code = "INTERNAL_SERVER"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the taxonomy code from err, or CodeInternalServer for
// anything that is not an *Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalServer
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsInternal reports whether err signals a data-integrity violation rather
// than a caller mistake. Internal errors are always fatal to the request and
// must never be downgraded to a user-facing rejection.
func IsInternal(err error) bool {
	return CodeOf(err) == CodeInternalServer
}
