package format

import "errors"

var (
	// ErrSignatureMismatch indicates the image does not start with Magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupportedVersion indicates a header version this package cannot interpret.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrUnverified indicates a verified value whose check word does not match,
	// either because it was never written or because it was corrupted.
	ErrUnverified = errors.New("format: value failed verification")
)
