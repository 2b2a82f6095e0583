package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrDuplicate indicates a unique constraint collision (name or audio file)
	ErrDuplicate = errors.New("duplicate")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken indicates a malformed opaque component token
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnsupported indicates a file format or content type is not supported
	ErrUnsupported = errors.New("unsupported")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
