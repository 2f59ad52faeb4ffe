package auth

import "errors"

// Errors raised while establishing the caller's identity from a token
var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrEmployeeAccessRequired = errors.New("employee access required")
)
