package errors

import (
	"errors"
	"fmt"
)

// Common error types for the agentdesk client
var (
	// Credential errors
	ErrNoCredential      = errors.New("no stored credential")
	ErrInvalidCredential = errors.New("credential rejected by the platform")

	// Session errors
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	ErrSessionInitializing  = errors.New("session is still initializing")

	// Store errors
	ErrProfileNotCached = errors.New("no cached profile")
	ErrCorruptStore     = errors.New("credential store is corrupt")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
