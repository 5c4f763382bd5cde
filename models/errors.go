package models

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrStorage            = errors.New("storage failure")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
