package memory

import (
	"slices"

	"github.com/ezrec/bus8/bus"
)

// Ram control values.
const (
	RAM_WRITE = bus.CTRL_SET    // Store the data bus into memory.
	RAM_READ  = bus.CTRL_ENABLE // Drive memory onto the data bus.

	RAM_CTRL_WIDTH = 2
)

// Ram is the random access memory, addressed by the address register.
type Ram struct {
	Cell []Word

	address *bus.Register
	data    *bus.Bus
	control *bus.Bus
}

// NewRam creates a zeroed memory of MEMORY_SIZE words.
func NewRam(address *bus.Register, data *bus.Bus) (ram *Ram) {
	ram = &Ram{
		Cell:    make([]Word, MEMORY_SIZE),
		address: address,
		data:    data,
		control: bus.NewBus("ram.ctl", RAM_CTRL_WIDTH),
	}

	return
}

// Control returns the read/write control bus.
func (ram *Ram) Control() *bus.Bus {
	return ram.control
}

// Reset zero-fills the memory.
func (ram *Ram) Reset() {
	clear(ram.Cell)
}

// Evaluate performs this cycle's memory action.
func (ram *Ram) Evaluate() (err error) {
	addr := ram.address.Read() & (len(ram.Cell) - 1)

	switch ram.control.Read() {
	case RAM_READ:
		err = ram.data.Write(ram.Cell[addr].Value)
	case RAM_WRITE:
		ram.Cell[addr].Set(ram.data.Read())
	}

	return
}

// Load installs words from address 0, and zero-fills the remainder.
func (ram *Ram) Load(words []Word) (err error) {
	if len(words) > len(ram.Cell) {
		err = ErrMemoryOverflow
		return
	}

	ram.Reset()
	err = ram.Install(0, words)

	return
}

// Install overwrites a run of cells starting at addr.
// Nothing is changed if the run does not fit.
func (ram *Ram) Install(addr int, words []Word) (err error) {
	if addr < 0 || addr >= len(ram.Cell) {
		err = ErrAddressInvalid
		return
	}
	if addr+len(words) > len(ram.Cell) {
		err = ErrMemoryOverflow
		return
	}

	for n, word := range words {
		word.Value &= WORD_MASK
		ram.Cell[addr+n] = word
	}

	return
}

// Snapshot returns a copy of the memory contents.
func (ram *Ram) Snapshot() []Word {
	return slices.Clone(ram.Cell)
}
