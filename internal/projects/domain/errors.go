package domain

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProject     = errors.New("invalid project")
	ErrStoreUnavailable   = errors.New("project store unavailable")
	ErrWriteConflict      = errors.New("project collection changed concurrently")
	ErrUnsupportedVersion = errors.New("unsupported project collection format")
)
