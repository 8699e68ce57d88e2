package domain

import "errors"

// Sentinel errors returned by services and repositories. The HTTP layer maps
// each to a deterministic status code and message envelope.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrForbidden          = errors.New("access forbidden")

	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordUnchanged = errors.New("new password must be different from current password")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrWeakPassword      = errors.New("password does not meet complexity requirements")

	ErrStudentNotFound  = errors.New("student not found")
	ErrDuplicateStudent = errors.New("student already exists")
	ErrCourseNotFound   = errors.New("course not found")
)
