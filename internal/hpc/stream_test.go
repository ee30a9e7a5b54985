package hpc

import "bytes"

// streamWriter packs codes least significant bit first the way a conformant
// encoder would, mirroring the width and alignment side effects the reader
// applies when it sees the same commands.
type streamWriter struct {
	buf   bytes.Buffer
	bits  uint64
	n     uint
	width uint
}

func newStreamWriter() *streamWriter {
	return &streamWriter{width: startWidth}
}

func (w *streamWriter) code(raw uint64) {
	w.bits |= raw << w.n
	w.n += w.width
	for w.n >= 8 {
		w.buf.WriteByte(byte(w.bits))
		w.bits >>= 8
		w.n -= 8
	}
}

// pad flushes any partial byte with zero bits.
func (w *streamWriter) pad() {
	if w.n > 0 {
		w.buf.WriteByte(byte(w.bits))
		w.bits = 0
		w.n = 0
	}
}

func (w *streamWriter) command(n uint64) {
	w.code(n)
	switch n {
	case cmdReset:
		w.pad()
		w.width = startWidth
	case cmdWiden:
		w.width++
	case cmdRealign:
		w.pad()
	}
}

func (w *streamWriter) value(b byte) {
	w.code(uint64(b) + commandLimit)
}

func (w *streamWriter) index(i int) {
	w.code(uint64(i) + indexBase)
}

func (w *streamWriter) bytes() []byte {
	w.pad()
	return w.buf.Bytes()
}

// encodeLiterals produces a valid stream that spells payload out one literal
// at a time. The payload must be at least two bytes long because the final
// byte always travels after the end-of-stream command.
func encodeLiterals(payload []byte) []byte {
	w := newStreamWriter()
	w.command(cmdReset)
	for _, b := range payload[:len(payload)-1] {
		w.value(b)
	}
	w.command(cmdRealign)
	w.value(payload[len(payload)-1])
	return w.bytes()
}
