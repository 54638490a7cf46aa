// Package memory implements the machine's unified code and data store.
package memory

import (
	"fmt"
	"strconv"
)

const (
	WORD_SIZE   = 8                    // Bits per word.
	WORD_MASK   = (1 << WORD_SIZE) - 1 // Mask of a word value.
	MEMORY_SIZE = 1 << WORD_SIZE       // Words of addressable memory.
)

// Word is one memory cell.
type Word struct {
	Value  int    // Numeric value, always within WORD_MASK.
	Origin string // Source line that produced the word, or empty.
	Base   int    // Preferred display base of a literal (2, 10, 16), or 0.
}

// MakeWord creates a word with no provenance.
func MakeWord(value int) Word {
	return Word{Value: value & WORD_MASK}
}

// Set overwrites the value. A machine write has no source line.
func (w *Word) Set(value int) {
	*w = MakeWord(value)
}

// HasOrigin returns true if the word was produced from a source line.
func (w Word) HasOrigin() bool {
	return len(w.Origin) != 0
}

// Format returns the value in the preferred base.
func (w Word) Format() string {
	switch w.Base {
	case 2:
		return fmt.Sprintf("0b%0*b", WORD_SIZE, w.Value)
	case 16:
		return fmt.Sprintf("0x%02x", w.Value)
	case 10:
		return strconv.Itoa(w.Value)
	default:
		return fmt.Sprintf("0x%02x", w.Value)
	}
}

// String returns the formatted value, with its source line if any.
func (w Word) String() string {
	if w.HasOrigin() {
		return fmt.Sprintf("%v ; %v", w.Format(), w.Origin)
	}
	return w.Format()
}
