package entity

import "errors"

var (
	// Upload errors
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMissingFile         = errors.New("no image file found")
	ErrUploadTooLarge      = errors.New("upload too large")

	// Validation errors
	ErrMissingDimensions = errors.New("dimensions are required")
	ErrInvalidDimensions = errors.New("dimensions must be positive integers")

	// Access errors
	ErrInvalidAPIKey = errors.New("invalid or missing api key")
	ErrRateLimited   = errors.New("rate limited")

	// Processing errors
	ErrDecodeImage   = errors.New("cannot decode image")
	ErrResizeFailed  = errors.New("resize failed")
	ErrResizeTimeout = errors.New("resize timed out")

	ErrNotFound = errors.New("route not found")
)
