package ports

import (
	"errors"

	"bonusMarket/internal/domain"
)

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")
	ErrClosed             = errors.New("component already closed")

	// Ticket Errors
	ErrInsufficientFunds = errors.New("insufficient funds for operation")
	ErrNoPairSelected    = errors.New("no trading pair selected")

	// Quote Source Errors
	ErrSourceUnavailable = errors.New("quote source is unavailable")
	ErrConnectionFailed  = errors.New("failed to connect to the quote source")
	ErrRateLimited       = errors.New("API rate limit exceeded")

	// Database Specific Errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
	ErrUpdateFailed = errors.New("database update failed")
)
