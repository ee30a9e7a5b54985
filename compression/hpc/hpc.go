// Package hpc decompresses the hpcmp LZW-family bit-packed stream format.
package hpc

import (
	"bytes"
	"io"

	"github.com/inovacc/hpcmp/internal/hpc"
)

// Classified decode failures, re-exported so callers can match them with
// errors.Is.
var (
	ErrTruncatedStream      = hpc.ErrTruncatedStream
	ErrMissingStartMarker   = hpc.ErrMissingStartMarker
	ErrExpectedLiteral      = hpc.ErrExpectedLiteral
	ErrExpectedFinalLiteral = hpc.ErrExpectedFinalLiteral
	ErrCorruptChain         = hpc.ErrCorruptChain
	ErrWidthOverflow        = hpc.ErrWidthOverflow
)

func Decompress(data []byte) ([]byte, error) {
	return DecompressReader(bytes.NewReader(data))
}

func DecompressReader(r io.Reader) ([]byte, error) {
	return hpc.NewDecoder(r).Decompress()
}
