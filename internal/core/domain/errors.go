package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountBanned      = errors.New("this account is banned")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrMissingField       = errors.New("missing required field")
	ErrEmptyField         = errors.New("field must not be blank")
	ErrInvalidOrUsedKey   = errors.New("invalid or used registration key")
	ErrUnauthorized       = errors.New("operation not permitted")
	ErrCannotSelfDemote   = errors.New("admin cannot demote themselves")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrKeyNotFound        = errors.New("registration key not found")
	ErrKeyInUse           = errors.New("used registration keys cannot be deleted")
	ErrKeyValueTaken      = errors.New("registration key value already exists")
	ErrInvalidRole        = errors.New("unknown role")
	ErrSessionExpired     = errors.New("session expired or revoked")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
