package services

import "errors"

// Shared service-level errors, mapped to HTTP statuses in handlers.
var (
	// Not found
	ErrMatchNotFound      = errors.New("match not found")
	ErrPredictionNotFound = errors.New("prediction not found")

	// Validation and business rules
	ErrInvalidScore      = errors.New("score values must be non-negative integers")
	ErrMatchLocked       = errors.New("match is locked for predictions")
	ErrUserIDRequired    = errors.New("user id is required")
	ErrTeamNamesRequired = errors.New("home and away team names are required")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid operator credentials")
)
