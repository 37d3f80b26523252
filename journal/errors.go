package journal

import "errors"

var (
	// ErrImageTooSmall is returned by Attach when the image cannot hold the
	// fixed fields and both state slots.
	ErrImageTooSmall = errors.New("journal: header image too small")

	// ErrNotAttached is returned by read-only views of a detached header.
	ErrNotAttached = errors.New("journal: header not attached")

	// ErrTransactionIDExhausted is returned when a transaction id cannot be
	// moved further without leaving the int64 range.
	ErrTransactionIDExhausted = errors.New("journal: transaction id range exhausted")
)
