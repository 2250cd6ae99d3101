package services

import "errors"

// Token errors.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	ErrEmptySecretKey     = errors.New("JWT secret key is empty")
)
