package domain

import "errors"

var (
	ErrInvalidEmail       = errors.New("Email must be at least 4 characters long")
	ErrWeakPassword       = errors.New("Password must be at least 8 characters long")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingToken       = errors.New("Access denied, token missing!")
	ErrInvalidToken       = errors.New("Invalid token!")
	ErrPostNotFound       = errors.New("Post not found")
	ErrPostFields         = errors.New("Title and content are required")
)
