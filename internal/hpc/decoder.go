package hpc

import (
	"context"
	"io"
	"log/slog"
)

const (
	dictCapacity = 0x1000
	maxInsertRun = 0x80
)

// LevelTrace sits one step below slog.LevelDebug; per-run output offsets are
// logged at this level.
const LevelTrace = slog.LevelDebug - 4

// dictEntry is one reconstructed dictionary slot: the byte sequence reachable
// by following next, with value appended. Entries only ever reference codes
// that existed before they were inserted.
type dictEntry struct {
	value byte
	next  code
}

// Decoder reconstructs the original byte sequence from a compressed stream.
// A Decoder decodes exactly one stream and must not be shared between
// goroutines.
type Decoder struct {
	r   *codeReader
	log *slog.Logger

	dict        []dictEntry
	prev        code
	prevLiteral byte
	prevRunLen  int

	out     []byte
	scratch []byte
}

type Option func(*Decoder)

// WithLogger routes decode trace records to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		d.log = l
	}
}

func NewDecoder(src io.Reader, opts ...Option) *Decoder {
	d := &Decoder{
		r:    newCodeReader(src),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		dict: make([]dictEntry, 0, dictCapacity),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decompress drives the stream to completion and returns the reconstructed
// byte sequence. The stream must open with a reset command; any failure
// aborts the whole decode.
func (d *Decoder) Decompress() ([]byte, error) {
	c, err := d.read()
	if err != nil {
		return nil, err
	}
	if !c.isCommand(cmdReset) {
		return nil, ErrMissingStartMarker
	}

	for {
		done, err := d.segment()
		if err != nil {
			return nil, err
		}
		if done {
			return d.out, nil
		}
	}
}

// segment decodes one dictionary lifetime: from a reset (or the stream
// start) to the next reset or the end of the stream. It reports done once
// the end-of-stream sequence has been consumed.
func (d *Decoder) segment() (bool, error) {
	d.dict = d.dict[:0]
	d.log.Debug("dict reset")

	c, err := d.read()
	if err != nil {
		return false, err
	}
	if c.kind != kindValue {
		return false, ErrExpectedLiteral
	}
	d.out = append(d.out, byte(c.n))
	d.prev = c
	d.prevLiteral = byte(c.n)
	d.prevRunLen = 0

	for {
		c, err := d.read()
		if err != nil {
			return false, err
		}

		switch {
		case c.isCommand(cmdReset):
			return false, nil
		case c.isCommand(cmdRealign):
			// End of stream: exactly one literal follows, already
			// byte-aligned by the realign.
			last, err := d.read()
			if err != nil {
				return false, err
			}
			if last.kind != kindValue {
				return false, ErrExpectedFinalLiteral
			}
			d.out = append(d.out, byte(last.n))
			return true, nil
		case c.kind == kindCommand:
			// Handled, if at all, inside the reader.
		default:
			if err := d.emit(c); err != nil {
				return false, err
			}
		}
	}
}

// emit resolves a literal or index code into its byte run, applies the
// dictionary growth policy and appends the run to the output.
func (d *Decoder) emit(c code) error {
	run, literal, err := d.resolve(c)
	if err != nil {
		return err
	}
	d.maybeInsert(literal)
	d.log.Log(context.Background(), LevelTrace, "run", "offset", len(d.out), "len", len(run))
	d.out = append(d.out, run...)
	d.prev = c
	d.prevLiteral = literal
	d.prevRunLen = len(run)
	return nil
}

// resolve expands c into its byte run, in output order, together with the
// run's first byte (the literal at the bottom of the chain).
func (d *Decoder) resolve(c code) ([]byte, byte, error) {
	scratch := d.scratch[:0]

	// An index one past the dictionary end references the entry about to be
	// inserted: substitute the previous code with its first byte appended.
	if c.kind == kindIndex && c.n == len(d.dict) {
		scratch = append(scratch, d.prevLiteral)
		c = d.prev
	}
	// Valid chains only point at earlier slots, so they take at most
	// len(dict) steps; anything longer or out of range is corruption.
	for steps := 0; c.kind == kindIndex; steps++ {
		if c.n >= len(d.dict) || steps == len(d.dict) {
			return nil, 0, ErrCorruptChain
		}
		scratch = append(scratch, d.dict[c.n].value)
		c = d.dict[c.n].next
	}
	if c.kind != kindValue {
		return nil, 0, ErrCorruptChain
	}
	scratch = append(scratch, byte(c.n))

	// scratch was accumulated most recently decoded first.
	for i, j := 0, len(scratch)-1; i < j; i, j = i+1, j-1 {
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	d.scratch = scratch
	return scratch, scratch[0], nil
}

// maybeInsert grows the dictionary with the run that just resolved, unless
// the previous run was already long (>= 0x80 bytes) or the dictionary hit
// its 0x1000 entry ceiling.
func (d *Decoder) maybeInsert(literal byte) {
	if d.prevRunLen >= maxInsertRun || len(d.dict) == dictCapacity {
		return
	}
	d.dict = append(d.dict, dictEntry{value: literal, next: d.prev})
	d.log.Debug("dict insert", "slot", len(d.dict)-1, "value", literal)
}

func (d *Decoder) read() (code, error) {
	c, err := d.r.read()
	if err != nil {
		return code{}, err
	}
	d.log.Debug("read", "code", c)
	return c, nil
}
