package services

import "errors"

var (
	ErrNotAuthenticated   = errors.New("no authenticated user")
	ErrNotFound           = errors.New("not found")
	ErrSuperseded         = errors.New("request superseded by a newer one")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrRecipeAPI          = errors.New("recipe api error")
	ErrInvalidInput       = errors.New("invalid input")
)
