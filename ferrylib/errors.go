package ferrylib

import "errors"

var (
	ErrInvalidURL      = errors.New("ferry: invalid url")
	ErrInvalidScheme   = errors.New("ferry: url scheme must be http or https")
	ErrHostRequired    = errors.New("ferry: url host is required")
	ErrInvalidPoolSize = errors.New("ferry: pool size bounds must satisfy 0 <= min <= max")

	ErrBorrowTimeout = errors.New("ferry: timed out waiting for a pooled connection")

	ErrMalformedResponse = errors.New("ferry: malformed response")
	ErrLineTooLong       = errors.New("ferry: response line too long")
)
