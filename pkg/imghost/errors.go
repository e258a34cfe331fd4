package imghost

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid image host configuration")

	// ErrEmptyImage is returned when the upload payload contains no data
	ErrEmptyImage = errors.New("empty image payload")

	// ErrUploadFailed is returned when the image host rejects the upload
	ErrUploadFailed = errors.New("image upload failed")
)
