package hpc

import "errors"

// Every decode failure is fatal to the whole operation and classified, so
// callers can match the failure kind with errors.Is.
var (
	ErrTruncatedStream      = errors.New("hpc: truncated stream")
	ErrMissingStartMarker   = errors.New("hpc: stream does not begin with a reset command")
	ErrExpectedLiteral      = errors.New("hpc: segment does not begin with a literal")
	ErrExpectedFinalLiteral = errors.New("hpc: end-of-stream command not followed by a literal")
	ErrCorruptChain         = errors.New("hpc: dictionary chain does not resolve to a literal")
	ErrWidthOverflow        = errors.New("hpc: code width grown past the supported maximum")
)
