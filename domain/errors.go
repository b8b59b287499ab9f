package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrPasswordReused     = errors.New("new password must be different from the current password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
)
