package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrUserAlreadyActive     = errors.New("user is already active")
	ErrNoActiveCode          = errors.New("no active activation code")
	ErrInvalidActivationCode = errors.New("invalid activation code")
	ErrActivationCodeExpired = errors.New("activation code has expired")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserIsNotActive       = errors.New("user is not active")
)
