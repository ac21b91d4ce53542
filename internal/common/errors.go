// Package common defines shared constants and sentinel errors used across
// the paintmap server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorMismatch     = errors.New("account mismatch")
	ErrorNotShared    = errors.New("not shared")
	ErrorParse        = errors.New("parse error")

	// Dispatch errors.
	ErrorInvalidArguments  = errors.New("invalid arguments")
	ErrorUndefinedFunction = errors.New("undefined function")
)
