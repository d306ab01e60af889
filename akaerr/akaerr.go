// Package akaerr defines the sentinel error kinds raised by the card
// and functions packages. Callers compare with errors.Is; nothing in
// this module retries or silently recovers from any of these.
package akaerr

import "errors"

var (
	// ErrKeyNotFound is raised when an identity has no provisioned K.
	ErrKeyNotFound = errors.New("aka: identity has no provisioned key")

	// ErrMacMismatch is raised when a received MAC does not match the
	// locally recomputed XMAC.
	ErrMacMismatch = errors.New("aka: received MAC does not match XMAC")

	// ErrInvalidSequence is raised when seq_check is enabled and the
	// received SQN is not strictly greater than the stored SQN.
	ErrInvalidSequence = errors.New("aka: SQN not strictly greater than stored SQN")

	// ErrPrfUnavailable is raised when a keyed SHA-1 PRF cannot be
	// constructed for a functions instance.
	ErrPrfUnavailable = errors.New("aka: keyed SHA-1 PRF not available")
)
