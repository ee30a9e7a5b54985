package hpc

import (
	"bufio"
	"errors"
	"io"
)

const (
	startWidth   = 9
	maxCodeWidth = 24
)

// codeReader turns a byte stream into a sequence of variable-width codes,
// packed least significant bit first. The width starts at 9 bits and is only
// changed by in-band command codes.
type codeReader struct {
	src       io.ByteReader
	bitBuffer uint64
	available uint
	width     uint
}

func newCodeReader(src io.Reader) *codeReader {
	br, ok := src.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(src)
	}
	return &codeReader{src: br, width: startWidth}
}

// read tops up the bit buffer, extracts the next code and applies its
// reader-level side effect before returning. The reset command restores the
// 9-bit width and drops all buffered bits, the widen command grows the width
// by one bit, and the realign command drops any partially consumed byte so
// the next code starts on a byte boundary without changing the width.
func (r *codeReader) read() (code, error) {
	for r.available < r.width {
		b, err := r.src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return code{}, ErrTruncatedStream
			}
			return code{}, err
		}
		r.bitBuffer |= uint64(b) << r.available
		r.available += 8
	}

	raw := r.bitBuffer & (1<<r.width - 1)
	r.bitBuffer >>= r.width
	r.available -= r.width

	c := classify(raw)
	switch {
	case c.isCommand(cmdReset):
		r.bitBuffer = 0
		r.available = 0
		r.width = startWidth
	case c.isCommand(cmdWiden):
		if r.width == maxCodeWidth {
			return code{}, ErrWidthOverflow
		}
		r.width++
	case c.isCommand(cmdRealign):
		r.bitBuffer = 0
		r.available = 0
	}
	return c, nil
}
