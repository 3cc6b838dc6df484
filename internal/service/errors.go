package service

import "errors"

var (
	// ErrInvalidArgument is returned for malformed initiation parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUploadNotFound is returned for unknown upload tokens.
	ErrUploadNotFound = errors.New("upload not found")
	// ErrProductNotFound is returned for unknown products.
	ErrProductNotFound = errors.New("product not found")
	// ErrChecksumMismatch is returned when the reassembled bytes do not hash
	// to the client-declared checksum. The session moves to failed.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrUploadIncomplete is returned when attach is attempted before every
	// chunk landed and was verified.
	ErrUploadIncomplete = errors.New("upload is not complete")
	// ErrSourceMissing is returned when the original bytes are absent from
	// storage at variant generation time.
	ErrSourceMissing = errors.New("original image not found")
	// ErrInvalidImage is returned when the bytes cannot be decoded as a
	// supported raster format.
	ErrInvalidImage = errors.New("invalid image file")
)
