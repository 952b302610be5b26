package models

import "errors"

// Application-wide standard errors
var (
	// User & Authentication Errors
	ErrUnauthorized = errors.New("unauthorized") // Authentication required or failed
	ErrUserNotFound = errors.New("user not found")

	// Story Errors
	ErrStoryNotFound     = errors.New("story not found")
	ErrStoryLimitReached = errors.New("story limit reached for subscription tier")

	// Generation Errors
	ErrEmptyGeneration = errors.New("generation provider returned empty content")
	ErrUploadFailed    = errors.New("image upload failed")
	ErrUnknownStyle    = errors.New("unknown illustration style")

	// General Request/Server Errors
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
