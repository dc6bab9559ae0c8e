package model

import "errors"

// Sentinel errors surfaced at the API boundary. Anything not matched by
// errors.Is against these is treated as an internal failure and reported
// to the caller with a generic message.
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPunchType   = errors.New("punch type must be \"in\" or \"out\"")
)
