package hpc

import "fmt"

// codeKind discriminates the three classes a raw code can fall into.
type codeKind uint8

const (
	kindCommand codeKind = iota
	kindValue
	kindIndex
)

// Command numbers carried in-band by the stream.
const (
	cmdReset   = 1
	cmdWiden   = 2
	cmdRealign = 3
)

const (
	commandLimit = 0x8
	indexBase    = 0x108
)

// code is one classified unit of the stream: a control command, a literal
// output byte, or a back-reference into the current dictionary.
type code struct {
	kind codeKind
	n    int
}

// classify maps a raw code into its variant. The mapping depends only on the
// numeric range of raw, never on the width it was read at.
func classify(raw uint64) code {
	switch {
	case raw < commandLimit:
		return code{kind: kindCommand, n: int(raw)}
	case raw >= indexBase:
		return code{kind: kindIndex, n: int(raw - indexBase)}
	default:
		return code{kind: kindValue, n: int(raw - commandLimit)}
	}
}

func (c code) isCommand(n int) bool {
	return c.kind == kindCommand && c.n == n
}

func (c code) String() string {
	switch c.kind {
	case kindCommand:
		return fmt.Sprintf("command(%d)", c.n)
	case kindValue:
		return fmt.Sprintf("value(0x%02x)", c.n)
	default:
		return fmt.Sprintf("index(%d)", c.n)
	}
}
