package usecase

import "errors"

// Sentinels the HTTP layer maps to status codes. Services wrap them with %w.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("resource not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConflict            = errors.New("conflict")
	// ErrDependencyUnavailable means the ledger could not settle; the wallet is left unchanged.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
