package bytesio

import "errors"

var (
	// ErrTruncated is returned when a read runs past the end of the buffer.
	ErrTruncated = errors.New("bytesio: truncated read")

	// ErrBadEncoding is returned when a fixed-length UTF-8 read is not valid UTF-8.
	ErrBadEncoding = errors.New("bytesio: invalid UTF-8 encoding")
)
