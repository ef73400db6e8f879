package domain

import "errors"

// Common domain errors
var (
	ErrNotFound        = errors.New("not found")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrDeliveryFailure = errors.New("notification delivery failed")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidEmailDomain = errors.New("email domain not allowed")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// User management errors
var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrRootImmutable = errors.New("root accounts cannot be modified")
)

// Resource moderation errors
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
)
