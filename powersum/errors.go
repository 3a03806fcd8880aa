// Package powersum implements the power-sum shuffle core: computing power
// vectors of a secret from an opened difference, folding them into a durable
// cross-party accumulator, and recovering the unordered secrets from the
// summed powers.
package powersum

import "errors"

var (
	// ErrLengthMismatch is returned when the precomputed power vector does
	// not match the requested power count.
	ErrLengthMismatch = errors.New("power vector length mismatch")
	// ErrAccumulatorMismatch is returned when a fold disagrees with the
	// persisted modulus or vector length. Fatal; the state is left unchanged.
	ErrAccumulatorMismatch = errors.New("accumulator modulus or length mismatch")
	// ErrInvalidPowerSums is returned when the summed powers do not describe
	// a multiset of field elements. Recoverable; the caller aborts the round.
	ErrInvalidPowerSums = errors.New("sums are not a valid power-sum sequence")
	// ErrMalformedInput is returned on out-of-range parameters or unparsable
	// harness input.
	ErrMalformedInput = errors.New("malformed input")
)
