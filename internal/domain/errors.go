package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidApplication  = errors.New("invalid application")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidAccount      = errors.New("invalid account")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrSessionNotFound     = errors.New("session not found")
)
