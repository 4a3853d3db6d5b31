package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidSlotGeometry = errors.New("invalid slot geometry")
	ErrBaseImageNotFound   = errors.New("base image not found")
	ErrProviderFailure     = errors.New("provider failure")
)
