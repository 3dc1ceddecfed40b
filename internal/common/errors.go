// Package common defines shared sentinel errors and small helpers used across
// the client packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrInvalidInput is returned when a required argument is blank.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks a rejected credential or session.
	ErrUnauthorized = errors.New("unauthorized")
)
