package auth

import "errors"

var (
	ErrUsernamePasswordRequired = errors.New("Username and password are required")
	ErrInvalidCredentials       = errors.New("Username atau password salah")
	ErrNotAuthenticated         = errors.New("Not authenticated")
)
