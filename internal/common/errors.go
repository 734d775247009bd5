// Package common defines shared constants and sentinel errors used across
// CardCraft components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorValidation           = errors.New("validation error")
	ErrorStorageNotConfigured = errors.New("storage not configured")

	// Pass generation errors.
	ErrorInvalidPassType = errors.New("invalid pass type")
)
